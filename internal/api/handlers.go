package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/youruser/deckprint/internal/cards"
	"github.com/youruser/deckprint/internal/deck"
	imagepkg "github.com/youruser/deckprint/internal/image"
	"github.com/youruser/deckprint/internal/service"
)

type Handler struct {
	svc *service.DeckService
}

func NewHandler(svc *service.DeckService) *Handler {
	return &Handler{svc: svc}
}

// statusFor maps generation errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, cards.ErrEmptyAssetSet):
		return http.StatusNotFound
	case errors.Is(err, imagepkg.ErrDimensionMismatch),
		errors.Is(err, imagepkg.ErrInvalidAnchor),
		errors.Is(err, imagepkg.ErrOutOfBounds),
		errors.Is(err, imagepkg.ErrOversizedOverlay),
		errors.Is(err, cards.ErrUnrecognizedRank):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// listCards returns the finished images in pagination order.
func (h *Handler) listCards(c *gin.Context) {
	cfg := h.svc.Config()
	paths, err := cards.ListImages(cfg.ImagesDir(), cfg.Options.ImageFormat)
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(names), "cards": names})
}

// previewCard composites one card in memory and returns it as PNG.
func (h *Handler) previewCard(c *gin.Context) {
	card, err := h.svc.Lookup(c.Param("rank"), c.Param("color"))
	if err != nil {
		fail(c, http.StatusNotFound, err)
		return
	}

	img, err := h.svc.Preview(card)
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}

	buf := new(bytes.Buffer)
	if err := imagepkg.EncodePNG(buf, img); err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func parseMode(c *gin.Context) (deck.Mode, bool) {
	mode, ok := deck.ParseMode(c.Param("mode"))
	if !ok {
		fail(c, http.StatusNotFound, fmt.Errorf("unknown pdf format %q", c.Param("mode")))
	}
	return mode, ok
}

// pickDocument selects the document of a plan. Separated plans have two,
// chosen with ?part=fronts|backs.
func pickDocument(docs []deck.Document, part string) (deck.Document, error) {
	if len(docs) == 1 && part == "" {
		return docs[0], nil
	}
	for _, d := range docs {
		if d.Name == "cards_"+part {
			return d, nil
		}
	}
	return deck.Document{}, fmt.Errorf("part %q not found, expected one of %v", part, documentNames(docs))
}

func documentNames(docs []deck.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Name
	}
	return out
}

// deckDocument renders the PDF of a pagination mode from the finished images.
func (h *Handler) deckDocument(c *gin.Context) {
	mode, ok := parseMode(c)
	if !ok {
		return
	}

	docs, exp, err := h.svc.Documents(mode)
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	doc, err := pickDocument(docs, c.Query("part"))
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	buf := new(bytes.Buffer)
	if err := exp.Render(buf, doc); err != nil {
		fail(c, statusFor(err), err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name+".pdf"))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// deckQR returns a QR code linking to the deck document of the same mode.
func (h *Handler) deckQR(c *gin.Context) {
	mode, ok := parseMode(c)
	if !ok {
		return
	}

	size := imagepkg.DefaultQRSize
	if s := c.Query("size"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			fail(c, http.StatusBadRequest, fmt.Errorf("invalid size %q", s))
			return
		}
		size = v
	}

	link := url.URL{Scheme: "http", Host: c.Request.Host, Path: "/api/decks/" + string(mode)}
	if c.Request.TLS != nil {
		link.Scheme = "https"
	}
	if part := c.Query("part"); part != "" {
		link.RawQuery = url.Values{"part": {part}}.Encode()
	}

	b, err := imagepkg.DownloadQR(link.String(), size)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
