package imagepkg

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/youruser/deckprint/internal/cards"
	"github.com/youruser/deckprint/internal/units"
)

// Assets names the input files. Ext includes its leading dot and is used
// for both inputs and outputs.
type Assets struct {
	InputDir   string
	Front      string
	FrontCheck string
	Back       string
	Symbol     string
	Ext        string

	// VerifyMargins selects FrontCheck instead of Front.
	VerifyMargins bool
}

// Layout is the physical placement of the corner glyphs, in millimeters.
type Layout struct {
	Bleed   units.Vec
	Margins units.Vec
	Spacing units.Vec
}

// Deck is the read-only context shared by every card of a run.
type Deck struct {
	Assets    Assets
	Layout    Layout
	Units     units.Converter
	OutputDir string

	backSize image.Point
}

// LoadDeck reads the back image size that every front template must match.
func LoadDeck(assets Assets, layout Layout, conv units.Converter, outputDir string) (*Deck, error) {
	d := &Deck{Assets: assets, Layout: layout, Units: conv, OutputDir: outputDir}
	size, err := Size(d.BackPath())
	if err != nil {
		return nil, fmt.Errorf("loading back image: %w", err)
	}
	d.backSize = size
	return d, nil
}

// NewDeck builds a context around an already known back size.
func NewDeck(assets Assets, layout Layout, conv units.Converter, outputDir string, backSize image.Point) *Deck {
	return &Deck{Assets: assets, Layout: layout, Units: conv, OutputDir: outputDir, backSize: backSize}
}

func (d *Deck) BackSize() image.Point { return d.backSize }

// BackSizeMM is the page size of the printed documents.
func (d *Deck) BackSizeMM() units.Vec {
	return d.Units.VecToMillimeters(units.VecFromPoint(d.backSize), true)
}

func (d *Deck) BackPath() string {
	return filepath.Join(d.Assets.InputDir, d.Assets.Back+d.Assets.Ext)
}

func (d *Deck) FrontPath() string {
	name := d.Assets.Front
	if d.Assets.VerifyMargins {
		name = d.Assets.FrontCheck
	}
	return filepath.Join(d.Assets.InputDir, name+d.Assets.Ext)
}

func (d *Deck) colorDir(c cards.Card) string {
	return filepath.Join(d.Assets.InputDir, c.Color)
}

func (d *Deck) CenterPath(c cards.Card) string {
	return filepath.Join(d.colorDir(c), c.Rank+"_center"+d.Assets.Ext)
}

func (d *Deck) SymbolPath(c cards.Card) string {
	return filepath.Join(d.colorDir(c), d.Assets.Symbol+d.Assets.Ext)
}

func (d *Deck) RankPath(c cards.Card) string {
	return filepath.Join(d.colorDir(c), c.Rank+d.Assets.Ext)
}

func (d *Deck) OutputPath(c cards.Card) string {
	return filepath.Join(d.OutputDir, c.FileName(d.Assets.Ext))
}
