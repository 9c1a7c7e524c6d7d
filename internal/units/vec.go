package units

import (
	"fmt"
	"image"
	"math"
)

// Vec is an (x, y) pair, in millimeters or pixels depending on context.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// VecFromSlice builds a Vec from a two element slice, as found in config files.
func VecFromSlice(s []float64) (Vec, error) {
	if len(s) != 2 {
		return Vec{}, fmt.Errorf("expected 2 values, got %d", len(s))
	}
	return Vec{X: s[0], Y: s[1]}, nil
}

func VecFromPoint(p image.Point) Vec {
	return Vec{X: float64(p.X), Y: float64(p.Y)}
}

func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec) Scale(f float64) Vec { return Vec{X: v.X * f, Y: v.Y * f} }

// Mul multiplies component-wise.
func (v Vec) Mul(o Vec) Vec { return Vec{X: v.X * o.X, Y: v.Y * o.Y} }

// Round rounds both components half to even.
func (v Vec) Round() Vec {
	return Vec{X: math.RoundToEven(v.X), Y: math.RoundToEven(v.Y)}
}

// Point truncates to an image.Point; call Round first for pixel positions.
func (v Vec) Point() image.Point {
	return image.Pt(int(v.X), int(v.Y))
}

func (v Vec) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
