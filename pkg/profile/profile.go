// Package profile loads and validates layout tuning profiles.
package profile

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/stevenlee02/textnet/pkg/force"
)

var validate = validator.New()

// Profile is one named layout tuning. Zero-valued numeric fields are filled
// from the default profile before validation, so a partial YAML file only
// overrides what it names.
type Profile struct {
	Name string `yaml:"name"`

	// Viewport in scene units.
	Width  float64 `yaml:"width" validate:"gt=0"`
	Height float64 `yaml:"height" validate:"gt=0"`

	// Many-body strength; negative repels.
	Repulsion float64 `yaml:"repulsion" validate:"required"`
	// Barnes-Hut accuracy ratio.
	Theta float64 `yaml:"theta" validate:"gt=0,lte=2"`

	// Spring target separation.
	LinkDistance float64 `yaml:"link_distance" validate:"gt=0"`
	// Flat spring strength override. Absent means strength derives from
	// endpoint degree (1/min of the two).
	LinkStrength *float64 `yaml:"link_strength" validate:"omitempty,gt=0,lte=1"`

	CenterStrength float64 `yaml:"center_strength" validate:"gt=0,lte=1"`
	VelocityDecay  float64 `yaml:"velocity_decay" validate:"gt=0,lt=1"`

	// Initial placement. The default spiral is deterministic; random
	// placement uses Seed.
	RandomPlacement bool  `yaml:"random_placement"`
	Seed            int64 `yaml:"seed"`
}

// Default returns the baseline profile: degree-based link strength and the
// tuned repulsion/distance constants.
func Default() Profile {
	return Profile{
		Name:           "default",
		Width:          960,
		Height:         600,
		Repulsion:      -300,
		Theta:          0.9,
		LinkDistance:   120,
		CenterStrength: 1,
		VelocityDecay:  0.6,
	}
}

// Tuned returns the profile with the flat 0.05 spring strength override.
func Tuned() Profile {
	p := Default()
	p.Name = "tuned"
	s := 0.05
	p.LinkStrength = &s
	return p
}

// Load reads a YAML profile, fills unset fields from Default, and validates.
func Load(r io.Reader) (Profile, error) {
	p := Default()
	p.Name = ""
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	p.fillDefaults()
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// LoadFile reads a profile from disk.
func LoadFile(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (p *Profile) fillDefaults() {
	d := Default()
	if p.Name == "" {
		p.Name = "custom"
	}
	if p.Width == 0 {
		p.Width = d.Width
	}
	if p.Height == 0 {
		p.Height = d.Height
	}
	if p.Repulsion == 0 {
		p.Repulsion = d.Repulsion
	}
	if p.Theta == 0 {
		p.Theta = d.Theta
	}
	if p.LinkDistance == 0 {
		p.LinkDistance = d.LinkDistance
	}
	if p.CenterStrength == 0 {
		p.CenterStrength = d.CenterStrength
	}
	if p.VelocityDecay == 0 {
		p.VelocityDecay = d.VelocityDecay
	}
}

// Validate checks the profile's numeric ranges.
func (p Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return nil
}

// Params converts the profile into solver parameters.
func (p Profile) Params() force.Params {
	params := force.Params{
		Repulsion:       p.Repulsion,
		Theta:           p.Theta,
		LinkDistance:    p.LinkDistance,
		CenterStrength:  p.CenterStrength,
		VelocityDecay:   p.VelocityDecay,
		RandomPlacement: p.RandomPlacement,
		Seed:            p.Seed,
	}
	if p.LinkStrength != nil {
		params.FlatStrength = true
		params.LinkStrength = *p.LinkStrength
	}
	return params
}
