package service

import (
	"context"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/youruser/deckprint/internal/cards"
	"github.com/youruser/deckprint/internal/config"
	"github.com/youruser/deckprint/internal/deck"
	imagepkg "github.com/youruser/deckprint/internal/image"
	"github.com/youruser/deckprint/internal/units"
)

// DeckService runs the card and document generation described by a config.
type DeckService struct {
	cfg *config.Config
	log logrus.FieldLogger
}

func NewDeckService(cfg *config.Config, log logrus.FieldLogger) *DeckService {
	return &DeckService{cfg: cfg, log: log}
}

func (s *DeckService) Config() *config.Config { return s.cfg }

// Deck reads the back image and returns the context shared by every card.
func (s *DeckService) Deck() (*imagepkg.Deck, error) {
	c := s.cfg
	assets := imagepkg.Assets{
		InputDir:      c.Folders.Inputs,
		Front:         c.Names.Front,
		FrontCheck:    c.Names.FrontCheck,
		Back:          c.Names.Back,
		Symbol:        c.Names.Symbol,
		Ext:           c.Options.ImageFormat,
		VerifyMargins: c.Options.VerifyMargins,
	}
	layout := imagepkg.Layout{
		Bleed:   c.Dimensions.BleedVec(),
		Margins: c.Dimensions.MarginsVec(),
		Spacing: c.Dimensions.SpacingVec(),
	}
	return imagepkg.LoadDeck(assets, layout, units.NewConverter(c.Dimensions.PPI), c.ImagesDir())
}

func (s *DeckService) Cards() []cards.Card {
	return cards.Deck(s.cfg.Names.Ranks, s.cfg.Names.Colors)
}

// Lookup validates a card against the configured ranks and colors.
func (s *DeckService) Lookup(rank, color string) (cards.Card, error) {
	return cards.Lookup(s.cfg.Names.Ranks, s.cfg.Names.Colors, rank, color)
}

// GenerateImages builds and saves every card. The first failure stops the
// run; cards saved before it stay on disk.
func (s *DeckService) GenerateImages(ctx context.Context) ([]string, error) {
	d, err := s.Deck()
	if err != nil {
		return nil, err
	}

	all := s.Cards()
	paths := make([]string, len(all))

	s.log.WithFields(logrus.Fields{
		"cards":   len(all),
		"workers": s.cfg.Options.Workers,
		"back":    d.BackPath(),
		"front":   d.FrontPath(),
	}).Info("Images creation")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Options.Workers)
	for i, card := range all {
		if gctx.Err() != nil {
			break
		}
		i, card := i, card
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path, err := s.buildCard(d, card)
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

func (s *DeckService) buildCard(d *imagepkg.Deck, card cards.Card) (string, error) {
	c, err := imagepkg.NewCompositor(d, card)
	if err != nil {
		return "", err
	}
	if err := c.Build(); err != nil {
		return "", err
	}
	path, err := c.Save()
	if err != nil {
		return "", err
	}
	s.log.WithFields(logrus.Fields{"card": card.String(), "path": path}).Debug("card saved")
	return path, nil
}

// Preview builds one card in memory without saving it.
func (s *DeckService) Preview(card cards.Card) (*image.NRGBA, error) {
	d, err := s.Deck()
	if err != nil {
		return nil, err
	}
	c, err := imagepkg.NewCompositor(d, card)
	if err != nil {
		return nil, err
	}
	if err := c.Build(); err != nil {
		return nil, err
	}
	return c.Image(), nil
}

// Mode resolves a pdf format name, falling back to the default layout.
func (s *DeckService) Mode(name string) deck.Mode {
	m, ok := deck.ParseMode(name)
	if !ok {
		s.log.WithField("pdf_format", name).Warn("unknown pdf format, using default")
	}
	return m
}

// Documents plans the documents of mode from the finished images on disk.
func (s *DeckService) Documents(mode deck.Mode) ([]deck.Document, deck.Exporter, error) {
	d, err := s.Deck()
	if err != nil {
		return nil, deck.Exporter{}, err
	}
	fronts, err := cards.ListImages(s.cfg.ImagesDir(), s.cfg.Options.ImageFormat)
	if err != nil {
		return nil, deck.Exporter{}, err
	}
	docs, err := deck.Plan(mode, d.BackPath(), fronts)
	if err != nil {
		return nil, deck.Exporter{}, err
	}
	exp := deck.Exporter{OutputDir: s.cfg.Folders.Outputs, PageSize: d.BackSizeMM()}
	return docs, exp, nil
}

// GeneratePDF writes the documents of mode and returns their paths.
func (s *DeckService) GeneratePDF(ctx context.Context, mode deck.Mode) ([]string, error) {
	docs, exp, err := s.Documents(mode)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		path, err := exp.Write(doc)
		if err != nil {
			return out, err
		}
		s.log.WithFields(logrus.Fields{
			"mode":  mode,
			"pages": len(doc.Pages),
			"path":  path,
		}).Info("PDF created")
		out = append(out, path)
	}
	return out, nil
}

// Run does what the options ask for: images, documents, or both.
func (s *DeckService) Run(ctx context.Context) error {
	opts := s.cfg.Options
	if opts.GenerateImages {
		paths, err := s.GenerateImages(ctx)
		if err != nil {
			return fmt.Errorf("generating images: %w", err)
		}
		s.log.WithField("count", len(paths)).Info("Images created")
	}
	if opts.GeneratePDF {
		if _, err := s.GeneratePDF(ctx, s.Mode(opts.PDFFormat)); err != nil {
			return fmt.Errorf("generating pdf: %w", err)
		}
	}
	return nil
}
