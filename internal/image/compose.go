package imagepkg

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/youruser/deckprint/internal/cards"
	"github.com/youruser/deckprint/internal/units"
	"github.com/youruser/deckprint/internal/util"
)

// Compositor builds the face of one card on top of its front template.
// It is not safe for concurrent use; build each card with its own.
type Compositor struct {
	deck  *Deck
	card  cards.Card
	front *image.NRGBA
}

// NewCompositor loads the front template of the deck for card.
func NewCompositor(deck *Deck, card cards.Card) (*Compositor, error) {
	front, err := Open(deck.FrontPath())
	if err != nil {
		return nil, fmt.Errorf("card %s: %w", card, err)
	}
	return NewCompositorFromImage(deck, card, front)
}

// NewCompositorFromImage starts from an already decoded template, which is
// copied.
func NewCompositorFromImage(deck *Deck, card cards.Card, front image.Image) (*Compositor, error) {
	size := front.Bounds().Size()
	if size != deck.BackSize() {
		return nil, fmt.Errorf("card %s: %w: front is %dx%d, back is %dx%d",
			card, ErrDimensionMismatch, size.X, size.Y, deck.BackSize().X, deck.BackSize().Y)
	}
	return &Compositor{deck: deck, card: card, front: imaging.Clone(front)}, nil
}

func (c *Compositor) Card() cards.Card { return c.card }

// Image returns the card as composited so far.
func (c *Compositor) Image() *image.NRGBA { return c.front }

func (c *Compositor) size() image.Point { return c.front.Bounds().Size() }

// Paste draws overlay with its own alpha channel as mask, its top-left
// corner at topLeft.
func (c *Compositor) Paste(overlay image.Image, topLeft image.Point) error {
	if err := c.checkBounds(topLeft, overlay.Bounds().Size()); err != nil {
		return err
	}
	c.front = imaging.Overlay(c.front, overlay, topLeft, 1.0)
	return nil
}

func (c *Compositor) checkBounds(topLeft, overlaySize image.Point) error {
	if topLeft.X < 0 || topLeft.Y < 0 {
		return fmt.Errorf("%w: top left corner coordinates are negative: %v", ErrOutOfBounds, topLeft)
	}
	bottomRight := topLeft.Add(overlaySize)
	size := c.size()
	if bottomRight.X > size.X || bottomRight.Y > size.Y {
		return fmt.Errorf("%w: bottom right corner coordinates %v exceed main image %dx%d",
			ErrOutOfBounds, bottomRight, size.X, size.Y)
	}
	return nil
}

// PasteCorners pastes overlay in the four corners, topLeft being its
// position in the top-left one. Nothing is drawn unless all four fit.
func (c *Compositor) PasteCorners(overlay image.Image, topLeft image.Point) error {
	placements, err := CornerPlacements(c.size(), overlay.Bounds().Size(), topLeft)
	if err != nil {
		return err
	}
	for _, p := range placements {
		if err := c.checkBounds(p.TopLeft, overlay.Bounds().Size()); err != nil {
			return fmt.Errorf("corner %v: %w", p.Anchor, err)
		}
	}

	inverted := imaging.FlipV(imaging.FlipH(overlay))
	for _, p := range placements {
		img := overlay
		if p.Flipped {
			img = inverted
		}
		if err := c.Paste(img, p.TopLeft); err != nil {
			return fmt.Errorf("corner %v: %w", p.Anchor, err)
		}
	}
	return nil
}

// PasteCenter pastes overlay in the middle of the card.
func (c *Compositor) PasteCenter(overlay image.Image) error {
	size := c.size()
	o := overlay.Bounds().Size()
	if o.X > size.X || o.Y > size.Y {
		return fmt.Errorf("%w: overlay is %dx%d, card is %dx%d", ErrOversizedOverlay, o.X, o.Y, size.X, size.Y)
	}

	center := units.VecFromPoint(size).Scale(0.5)
	tl, err := AnchoredTopLeft(o, center, AnchorCenter)
	if err != nil {
		return err
	}
	return c.Paste(overlay, tl)
}

// Build pastes, in order, the center artwork, the color glyph in every
// corner and the rank glyph above each color glyph.
func (c *Compositor) Build() error {
	center, err := Open(c.deck.CenterPath(c.card))
	if err != nil {
		return fmt.Errorf("card %s: %w", c.card, err)
	}
	if err := c.PasteCenter(center); err != nil {
		return fmt.Errorf("card %s: center artwork: %w", c.card, err)
	}

	symbol, err := Open(c.deck.SymbolPath(c.card))
	if err != nil {
		return fmt.Errorf("card %s: %w", c.card, err)
	}
	if err := c.pasteSymbol(symbol); err != nil {
		return fmt.Errorf("card %s: color glyph: %w", c.card, err)
	}

	rank, err := Open(c.deck.RankPath(c.card))
	if err != nil {
		return fmt.Errorf("card %s: %w", c.card, err)
	}
	if err := c.pasteRank(rank, symbol.Bounds().Dx()); err != nil {
		return fmt.Errorf("card %s: rank glyph: %w", c.card, err)
	}
	return nil
}

// SymbolTopLeft is where the color glyph goes in the top-left corner.
func (c *Compositor) SymbolTopLeft(symbolSize image.Point) (image.Point, error) {
	l := c.deck.Layout
	target := c.deck.Units.VecToPixels(l.Bleed.Add(l.Margins))
	return AnchoredTopLeft(symbolSize, target, AnchorTopLeft)
}

// RankTopLeft is where the rank glyph goes in the top-left corner: its
// bottom center sits the configured spacing above the middle of the color
// glyph.
func (c *Compositor) RankTopLeft(rankSize image.Point, symbolWidth int) (image.Point, error) {
	l := c.deck.Layout
	target := c.deck.Units.VecToPixels(l.Bleed.Add(l.Margins).Sub(l.Spacing)).
		Add(units.Vec{X: float64(symbolWidth) / 2})
	return AnchoredTopLeft(rankSize, target, AnchorBottomCenter)
}

func (c *Compositor) pasteSymbol(symbol image.Image) error {
	tl, err := c.SymbolTopLeft(symbol.Bounds().Size())
	if err != nil {
		return err
	}
	return c.PasteCorners(symbol, tl)
}

func (c *Compositor) pasteRank(rank image.Image, symbolWidth int) error {
	tl, err := c.RankTopLeft(rank.Bounds().Size(), symbolWidth)
	if err != nil {
		return err
	}
	return c.PasteCorners(rank, tl)
}

// Save writes the card to the output folder and returns its path.
func (c *Compositor) Save() (string, error) {
	if err := util.EnsureDir(c.deck.OutputDir); err != nil {
		return "", err
	}
	path := c.deck.OutputPath(c.card)
	if err := imaging.Save(c.front, path); err != nil {
		return "", fmt.Errorf("saving card %s: %w", c.card, err)
	}
	return path, nil
}
