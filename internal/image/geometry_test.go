package imagepkg

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/deckprint/internal/units"
)

func TestAnchoredTopLeft(t *testing.T) {
	tests := []struct {
		name   string
		size   image.Point
		target units.Vec
		anchor Anchor
		want   image.Point
	}{
		{name: "top left anchor", size: image.Pt(100, 100), target: units.Vec{X: 50, Y: 50}, anchor: AnchorTopLeft, want: image.Pt(50, 50)},
		{name: "center anchor", size: image.Pt(100, 100), target: units.Vec{X: 375, Y: 525}, anchor: AnchorCenter, want: image.Pt(325, 475)},
		{name: "bottom center anchor", size: image.Pt(40, 30), target: units.Vec{X: 90, Y: 40}, anchor: AnchorBottomCenter, want: image.Pt(70, 10)},
		{name: "bottom right anchor", size: image.Pt(100, 80), target: units.Vec{X: 700, Y: 990}, anchor: AnchorBottomRight, want: image.Pt(600, 910)},
		{name: "half rounds down to even", size: image.Pt(3, 3), target: units.Vec{X: 10, Y: 10}, anchor: AnchorCenter, want: image.Pt(8, 8)},
		{name: "half rounds up to even", size: image.Pt(5, 5), target: units.Vec{X: 10, Y: 10}, anchor: AnchorCenter, want: image.Pt(8, 8)},
		{name: "zero", size: image.Pt(10, 10), target: units.Vec{}, anchor: AnchorTopLeft, want: image.Pt(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AnchoredTopLeft(tt.size, tt.target, tt.anchor)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnchoredTopLeftInvalidAnchor(t *testing.T) {
	for _, a := range []Anchor{{-0.1, 0}, {0, -0.1}, {1.1, 0}, {0, 1.5}} {
		_, err := AnchoredTopLeft(image.Pt(10, 10), units.Vec{X: 100, Y: 100}, a)
		assert.ErrorIs(t, err, ErrInvalidAnchor, "anchor %v", a)
	}
}

func TestAnchoredTopLeftNegative(t *testing.T) {
	_, err := AnchoredTopLeft(image.Pt(100, 100), units.Vec{X: 40, Y: 50}, AnchorCenter)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = AnchoredTopLeft(image.Pt(10, 10), units.Vec{X: 5, Y: 5}, AnchorBottomRight)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestAnchoredTopLeftLandsOnTarget(t *testing.T) {
	size := image.Pt(37, 53)
	for ax := 0.0; ax <= 1.0; ax += 0.125 {
		for ay := 0.0; ay <= 1.0; ay += 0.125 {
			for _, target := range []units.Vec{{X: 60, Y: 60}, {X: 333.3, Y: 71.5}, {X: 1000, Y: 999.9}} {
				a := Anchor{ax, ay}
				tl, err := AnchoredTopLeft(size, target, a)
				require.NoError(t, err)

				landed := units.VecFromPoint(tl).Add(units.VecFromPoint(size).Mul(a.Vec()))
				assert.InDelta(t, target.X, landed.X, 1, "anchor %v target %v", a, target)
				assert.InDelta(t, target.Y, landed.Y, 1, "anchor %v target %v", a, target)
			}
		}
	}
}

func TestCornerPlacements(t *testing.T) {
	card := image.Pt(750, 1050)
	overlay := image.Pt(100, 80)

	got, err := CornerPlacements(card, overlay, image.Pt(50, 60))
	require.NoError(t, err)

	assert.Equal(t, [4]Placement{
		{Anchor: AnchorTopLeft, TopLeft: image.Pt(50, 60), Flipped: false},
		{Anchor: AnchorTopRight, TopLeft: image.Pt(600, 60), Flipped: false},
		{Anchor: AnchorBottomLeft, TopLeft: image.Pt(50, 910), Flipped: true},
		{Anchor: AnchorBottomRight, TopLeft: image.Pt(600, 910), Flipped: true},
	}, got)
}

func TestCornerPlacementsHalfTurnSymmetry(t *testing.T) {
	card := image.Pt(640, 480)
	for _, overlay := range []image.Point{{30, 20}, {17, 41}, {1, 1}} {
		for _, tl := range []image.Point{{0, 0}, {13, 7}, {100, 50}} {
			got, err := CornerPlacements(card, overlay, tl)
			require.NoError(t, err)

			rotated := map[image.Point]bool{}
			for _, p := range got {
				rotated[card.Sub(p.TopLeft).Sub(overlay)] = true
			}
			for _, p := range got {
				assert.True(t, rotated[p.TopLeft], "overlay %v tl %v: %v has no half turn partner", overlay, tl, p.TopLeft)
			}
			assert.Len(t, rotated, 4)
		}
	}
}

func TestCornerPlacementsOutOfBounds(t *testing.T) {
	_, err := CornerPlacements(image.Pt(100, 100), image.Pt(60, 60), image.Pt(50, 0))
	assert.ErrorIs(t, err, ErrOutOfBounds)
}
