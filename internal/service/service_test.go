package service

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/deckprint/internal/cards"
	"github.com/youruser/deckprint/internal/config"
	"github.com/youruser/deckprint/internal/deck"
	imagepkg "github.com/youruser/deckprint/internal/image"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func save(t *testing.T, w, h int, c color.Color, path ...string) {
	t.Helper()
	p := filepath.Join(path...)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, imaging.Save(imaging.New(w, h, c), p))
}

// testConfig lays out a 300x420 px deck at ten pixels per millimeter.
func testConfig(t *testing.T, ranks, colors []string) *config.Config {
	t.Helper()
	root := t.TempDir()
	inputs := filepath.Join(root, "inputs")

	save(t, 300, 420, white, inputs, "front.png")
	save(t, 300, 420, black, inputs, "back.png")
	for _, c := range colors {
		save(t, 30, 30, red, inputs, c, "symbol.png")
		for _, r := range ranks {
			save(t, 12, 10, black, inputs, c, r+".png")
			save(t, 100, 100, red, inputs, c, r+"_center.png")
		}
	}

	return &config.Config{
		Folders: config.FoldersConfig{Inputs: inputs, Outputs: filepath.Join(root, "outputs"), Images: "images"},
		Names: config.NamesConfig{
			Front: "front", FrontCheck: "front_check", Back: "back", Symbol: "symbol",
			Ranks: ranks, Colors: colors,
		},
		Dimensions: config.DimensionsConfig{
			PPI:     254,
			Bleed:   []float64{1, 1},
			Margins: []float64{1, 1},
			Spacing: []float64{0.5, 0.5},
		},
		Options: config.OptionsConfig{
			GenerateImages: true,
			GeneratePDF:    true,
			PDFFormat:      "default",
			ImageFormat:    ".png",
			Workers:        2,
		},
	}
}

func newTestService(cfg *config.Config) (*DeckService, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return NewDeckService(cfg, log), hook
}

func TestGenerateImages(t *testing.T) {
	cfg := testConfig(t, []string{"10", "K"}, []string{"hearts", "spades"})
	svc, _ := newTestService(cfg)

	paths, err := svc.GenerateImages(context.Background())
	require.NoError(t, err)
	require.Len(t, paths, 4)

	dir := cfg.ImagesDir()
	assert.Equal(t, []string{
		filepath.Join(dir, "hearts_10.png"),
		filepath.Join(dir, "spades_10.png"),
		filepath.Join(dir, "hearts_K.png"),
		filepath.Join(dir, "spades_K.png"),
	}, paths)

	img, err := imagepkg.Open(paths[0])
	require.NoError(t, err)
	got := color.NRGBAModel.Convert(img.At(20, 20)).(color.NRGBA)
	assert.Equal(t, red, got)
}

func TestGenerateImagesStopsOnGeometryError(t *testing.T) {
	cfg := testConfig(t, []string{"2"}, []string{"clubs"})
	save(t, 290, 30, red, cfg.Folders.Inputs, "clubs", "symbol.png")
	svc, _ := newTestService(cfg)

	_, err := svc.GenerateImages(context.Background())
	assert.ErrorIs(t, err, imagepkg.ErrOutOfBounds)
	assert.Contains(t, err.Error(), "clubs_2")
}

func TestGenerateImagesDimensionMismatch(t *testing.T) {
	cfg := testConfig(t, []string{"2"}, []string{"clubs"})
	save(t, 299, 420, white, cfg.Folders.Inputs, "front.png")
	svc, _ := newTestService(cfg)

	_, err := svc.GenerateImages(context.Background())
	assert.ErrorIs(t, err, imagepkg.ErrDimensionMismatch)

	_, err = os.Stat(filepath.Join(cfg.ImagesDir(), "clubs_2.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateImagesVerifyMargins(t *testing.T) {
	cfg := testConfig(t, []string{"2"}, []string{"clubs"})
	cfg.Options.VerifyMargins = true
	svc, _ := newTestService(cfg)

	_, err := svc.GenerateImages(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "front_check.png")

	save(t, 300, 420, white, cfg.Folders.Inputs, "front_check.png")
	_, err = svc.GenerateImages(context.Background())
	assert.NoError(t, err)
}

func TestGenerateImagesCanceled(t *testing.T) {
	cfg := testConfig(t, []string{"2"}, []string{"clubs"})
	svc, _ := newTestService(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.GenerateImages(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGeneratePDF(t *testing.T) {
	cfg := testConfig(t, []string{"2", "A"}, []string{"clubs"})
	svc, hook := newTestService(cfg)

	_, err := svc.GenerateImages(context.Background())
	require.NoError(t, err)

	tests := []struct {
		mode deck.Mode
		want []string
	}{
		{mode: deck.ModeDefault, want: []string{"cards_default.pdf"}},
		{mode: deck.ModeSeparated, want: []string{"cards_fronts.pdf", "cards_backs.pdf"}},
		{mode: deck.ModeAlternated, want: []string{"cards_alternated.pdf"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			paths, err := svc.GeneratePDF(context.Background(), tt.mode)
			require.NoError(t, err)
			require.Len(t, paths, len(tt.want))
			for i, name := range tt.want {
				assert.Equal(t, filepath.Join(cfg.Folders.Outputs, name), paths[i])
				assert.FileExists(t, paths[i])
			}
		})
	}

	assert.Equal(t, "PDF created", hook.LastEntry().Message)
}

func TestDocuments(t *testing.T) {
	cfg := testConfig(t, []string{"2", "A"}, []string{"clubs"})
	svc, _ := newTestService(cfg)
	_, err := svc.GenerateImages(context.Background())
	require.NoError(t, err)

	docs, exp, err := svc.Documents(deck.ModeDefault)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	dir := cfg.ImagesDir()
	assert.Equal(t, []string{
		filepath.Join(cfg.Folders.Inputs, "back.png"),
		filepath.Join(dir, "clubs_A.png"),
		filepath.Join(dir, "clubs_2.png"),
	}, docs[0].Pages)
	assert.Equal(t, 30.0, exp.PageSize.X)
	assert.Equal(t, 42.0, exp.PageSize.Y)
}

func TestGeneratePDFWithoutImages(t *testing.T) {
	cfg := testConfig(t, []string{"2"}, []string{"clubs"})
	require.NoError(t, os.MkdirAll(cfg.ImagesDir(), 0o755))
	svc, _ := newTestService(cfg)

	_, err := svc.GeneratePDF(context.Background(), deck.ModeDefault)
	assert.ErrorIs(t, err, cards.ErrEmptyAssetSet)
}

func TestRun(t *testing.T) {
	cfg := testConfig(t, []string{"2"}, []string{"clubs", "hearts"})
	cfg.Options.PDFFormat = "alternated"
	svc, _ := newTestService(cfg)

	require.NoError(t, svc.Run(context.Background()))
	assert.FileExists(t, filepath.Join(cfg.ImagesDir(), "clubs_2.png"))
	assert.FileExists(t, filepath.Join(cfg.ImagesDir(), "hearts_2.png"))
	assert.FileExists(t, filepath.Join(cfg.Folders.Outputs, "cards_alternated.pdf"))
}

func TestRunImagesOnly(t *testing.T) {
	cfg := testConfig(t, []string{"2"}, []string{"clubs"})
	cfg.Options.GeneratePDF = false
	svc, _ := newTestService(cfg)

	require.NoError(t, svc.Run(context.Background()))
	assert.NoFileExists(t, filepath.Join(cfg.Folders.Outputs, "cards_default.pdf"))
}

func TestModeFallback(t *testing.T) {
	svc, hook := newTestService(testConfig(t, []string{"2"}, []string{"clubs"}))

	assert.Equal(t, deck.ModeSeparated, svc.Mode("separated"))
	assert.Nil(t, hook.LastEntry())

	assert.Equal(t, deck.ModeDefault, svc.Mode("sideways"))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestPreview(t *testing.T) {
	cfg := testConfig(t, []string{"Q"}, []string{"hearts"})
	svc, _ := newTestService(cfg)

	card, err := svc.Lookup("Q", "hearts")
	require.NoError(t, err)

	img, err := svc.Preview(card)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.NoFileExists(t, filepath.Join(cfg.ImagesDir(), "hearts_Q.png"))
}
