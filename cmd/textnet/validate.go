package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stevenlee02/textnet/pkg/graph"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <document.json>",
		Short: "Lint a document before viewing it",
		Long: `Check a document for the conditions the engine rejects (links to
unknown nodes) or quietly tolerates (duplicate identifiers, context keys
that can never match a node pair).

Exits non-zero when any error-severity finding is present.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			findings := graph.Lint(doc)
			if len(findings) == 0 {
				color.New(color.FgGreen).Println("✓ document is clean")
				return nil
			}

			errs := 0
			for _, f := range findings {
				if f.Severity == graph.SeverityError {
					errs++
					color.New(color.FgRed).Printf("✗ error: %s\n", f.Message)
				} else {
					color.New(color.FgYellow).Printf("! warning: %s\n", f.Message)
				}
			}
			if errs > 0 {
				return fmt.Errorf("%d error(s), %d warning(s)", errs, len(findings)-errs)
			}
			fmt.Printf("%d warning(s), no errors\n", len(findings))
			return nil
		},
	}
	return cmd
}
