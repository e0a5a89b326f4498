package pricing

import "math"

// Ratios are the process-wide point conversion factors. Hours and price are
// both derived from points; neither is ever stored independently of a
// re-derivable point value. Injected from configuration at startup.
type Ratios struct {
	HoursPerPoint float64
	PricePerPoint float64
}

// DefaultRatios returns the studio's standard conversion factors.
func DefaultRatios() Ratios {
	return Ratios{HoursPerPoint: 10, PricePerPoint: 150}
}

// Bounds is the inclusive complexity range valid at a given call site.
// Line-item edits and package templates carry different ranges, so the
// range is always explicit rather than baked into the function.
type Bounds struct {
	Min float64
	Max float64
}

// ItemBounds is the complexity range for line-item edits.
func ItemBounds() Bounds { return Bounds{Min: 0.5, Max: 2.0} }

// TemplateBounds is the complexity range for package template defaults.
func TemplateBounds() Bounds { return Bounds{Min: 1.0, Max: 5.0} }

// Clamp snaps a complexity multiplier into the bounds.
func (b Bounds) Clamp(c float64) float64 {
	if c < b.Min {
		return b.Min
	}
	if c > b.Max {
		return b.Max
	}
	return c
}

// Contains reports whether a complexity multiplier is valid without clamping.
func (b Bounds) Contains(c float64) bool {
	return c >= b.Min && c <= b.Max
}

// Adjusted holds the derived values for one composition row.
type Adjusted struct {
	Points float64
	Hours  float64
	Price  float64
}

// Compute derives points, hours, and price for a deliverable line.
// Points are rounded to one decimal before hours and price are derived so
// the three figures can never drift apart. A zero or negative base point
// value yields an all-zero result rather than an error.
func Compute(basePoints, complexity float64, quantity int, bounds Bounds, ratios Ratios) Adjusted {
	if basePoints <= 0 || quantity <= 0 {
		return Adjusted{}
	}
	points := round1(basePoints * bounds.Clamp(complexity) * float64(quantity))
	return Adjusted{
		Points: points,
		Hours:  points * ratios.HoursPerPoint,
		Price:  points * ratios.PricePerPoint,
	}
}

// Derive re-derives hours and price from an already-summed point total.
// Sprint totals use this after summing row points from scratch.
func Derive(points float64, ratios Ratios) Adjusted {
	return Adjusted{
		Points: points,
		Hours:  points * ratios.HoursPerPoint,
		Price:  points * ratios.PricePerPoint,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
