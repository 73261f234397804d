package graph

import "errors"

// Common errors returned by document construction
var (
	ErrUnknownEndpoint = errors.New("link references unknown node")
	ErrInvalidDocument = errors.New("document failed validation")
	ErrMalformedJSON   = errors.New("document is not valid JSON")
	ErrAccessorFailed  = errors.New("identifier accessor failed")
	ErrEmptyIdentifier = errors.New("identifier accessor returned empty string")
)
