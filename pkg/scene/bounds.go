package scene

import "math"

// Bounds is an axis-aligned box around the projected primitives.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Bounds computes the extent of all circles, radius included. For an empty
// scene it returns a unit box around the origin.
func (s *Scene) Bounds() Bounds {
	if len(s.circles) == 0 {
		return Bounds{MinX: -0.5, MinY: -0.5, MaxX: 0.5, MaxY: 0.5}
	}
	b := Bounds{
		MinX: math.MaxFloat64, MinY: math.MaxFloat64,
		MaxX: -math.MaxFloat64, MaxY: -math.MaxFloat64,
	}
	for _, c := range s.circles {
		b.MinX = math.Min(b.MinX, c.X-c.Radius)
		b.MaxX = math.Max(b.MaxX, c.X+c.Radius)
		b.MinY = math.Min(b.MinY, c.Y-c.Radius)
		b.MaxY = math.Max(b.MaxY, c.Y+c.Radius)
	}
	return b
}

// Fit returns the affine transform that maps the bounds into a
// width x height viewport with the given padding, preserving aspect ratio.
func (b Bounds) Fit(width, height, padding float64) Transform {
	rangeX := b.MaxX - b.MinX
	rangeY := b.MaxY - b.MinY
	if rangeX < 1e-9 {
		rangeX = 1
	}
	if rangeY < 1e-9 {
		rangeY = 1
	}

	scale := math.Min((width-2*padding)/rangeX, (height-2*padding)/rangeY)
	if scale <= 0 || math.IsInf(scale, 0) {
		scale = 1
	}

	// Center the scaled extent inside the viewport.
	return Transform{
		Scale:   scale,
		OffsetX: padding + (width-2*padding-rangeX*scale)/2 - b.MinX*scale,
		OffsetY: padding + (height-2*padding-rangeY*scale)/2 - b.MinY*scale,
	}
}

// Transform maps simulation coordinates to viewport coordinates.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Apply maps one point.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.Scale + t.OffsetX, y*t.Scale + t.OffsetY
}

// Invert maps a viewport point back to simulation coordinates.
func (t Transform) Invert(x, y float64) (float64, float64) {
	return (x - t.OffsetX) / t.Scale, (y - t.OffsetY) / t.Scale
}
