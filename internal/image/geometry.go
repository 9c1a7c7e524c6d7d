package imagepkg

import (
	"fmt"
	"image"

	"github.com/youruser/deckprint/internal/units"
)

// Anchor is a point of an image given as fractions of its width and height.
// {0.5, 0.5} is the center, {1, 1} the bottom-right corner.
type Anchor struct {
	X, Y float64
}

var (
	AnchorTopLeft      = Anchor{0, 0}
	AnchorTopRight     = Anchor{1, 0}
	AnchorBottomLeft   = Anchor{0, 1}
	AnchorBottomRight  = Anchor{1, 1}
	AnchorCenter       = Anchor{0.5, 0.5}
	AnchorBottomCenter = Anchor{0.5, 1}
)

func (a Anchor) Vec() units.Vec { return units.Vec{X: a.X, Y: a.Y} }

func (a Anchor) valid() bool {
	return a.X >= 0 && a.X <= 1 && a.Y >= 0 && a.Y <= 1
}

func (a Anchor) String() string {
	return fmt.Sprintf("(%g, %g)", a.X, a.Y)
}

// AnchoredTopLeft returns the top-left pixel at which an image of the given
// size must be placed so that its anchor point lands on target.
func AnchoredTopLeft(size image.Point, target units.Vec, anchor Anchor) (image.Point, error) {
	if !anchor.valid() {
		return image.Point{}, fmt.Errorf("%w: got %v", ErrInvalidAnchor, anchor)
	}

	tl := target.Sub(units.VecFromPoint(size).Mul(anchor.Vec())).Round()
	if tl.X < 0 || tl.Y < 0 {
		return image.Point{}, fmt.Errorf(
			"%w: top left corner coordinates are negative: %v (target %v, size %dx%d, anchor %v)",
			ErrOutOfBounds, tl, target, size.X, size.Y, anchor,
		)
	}
	return tl.Point(), nil
}

// Placement is where one copy of a corner overlay goes.
type Placement struct {
	Anchor  Anchor
	TopLeft image.Point
	Flipped bool
}

// The bottom corners carry the overlay turned upside down so the card reads
// the same after a half turn.
var corners = [4]struct {
	anchor Anchor
	flip   bool
}{
	{AnchorTopLeft, false},
	{AnchorTopRight, false},
	{AnchorBottomLeft, true},
	{AnchorBottomRight, true},
}

// CornerPlacements mirrors topLeft, given for the top-left corner of a card,
// into all four corners of a card of cardSize.
func CornerPlacements(cardSize, overlaySize, topLeft image.Point) ([4]Placement, error) {
	var out [4]Placement

	tl := units.VecFromPoint(topLeft)
	mirrored := units.VecFromPoint(cardSize).Sub(tl)
	for i, c := range corners {
		a := c.anchor.Vec()
		target := units.Vec{X: 1 - a.X, Y: 1 - a.Y}.Mul(tl).Add(a.Mul(mirrored))

		p, err := AnchoredTopLeft(overlaySize, target, c.anchor)
		if err != nil {
			return out, fmt.Errorf("corner %v: %w", c.anchor, err)
		}
		out[i] = Placement{Anchor: c.anchor, TopLeft: p, Flipped: c.flip}
	}
	return out, nil
}
