// Package units converts between physical millimeters and pixels.
//
// All rounding rounds half to even, so 2.5 px becomes 2 and 3.5 px becomes 4.
package units

import "math"

const MillimetersPerInch = 25.4

// Converter holds the pixel density of the artwork in pixels per inch.
type Converter struct {
	PPI float64
}

func NewConverter(ppi float64) Converter {
	return Converter{PPI: ppi}
}

// MillimetersToPixels converts every value to pixels and rounds it.
func (c Converter) MillimetersToPixels(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, mm := range values {
		out[i] = math.RoundToEven(mm / MillimetersPerInch * c.PPI)
	}
	return out
}

// PixelsToMillimeters converts every value to millimeters, rounding the
// results only when rounded is set.
func (c Converter) PixelsToMillimeters(values []float64, rounded bool) []float64 {
	out := make([]float64, len(values))
	for i, px := range values {
		mm := px * MillimetersPerInch / c.PPI
		if rounded {
			mm = math.RoundToEven(mm)
		}
		out[i] = mm
	}
	return out
}

// VecToPixels is MillimetersToPixels for a single (x, y) pair.
func (c Converter) VecToPixels(v Vec) Vec {
	px := c.MillimetersToPixels([]float64{v.X, v.Y})
	return Vec{X: px[0], Y: px[1]}
}

// VecToMillimeters is PixelsToMillimeters for a single (x, y) pair.
func (c Converter) VecToMillimeters(v Vec, rounded bool) Vec {
	mm := c.PixelsToMillimeters([]float64{v.X, v.Y}, rounded)
	return Vec{X: mm[0], Y: mm[1]}
}
