package deck

import (
	"fmt"

	"github.com/youruser/deckprint/internal/cards"
)

// Mode is how fronts and backs are laid out across documents.
type Mode string

const (
	// ModeDefault prints one back followed by every front.
	ModeDefault Mode = "default"
	// ModeSeparated prints the fronts and the backs as two documents.
	ModeSeparated Mode = "separated"
	// ModeAlternated prints back, front, back, front, ...
	ModeAlternated Mode = "alternated"
)

var Modes = []Mode{ModeDefault, ModeSeparated, ModeAlternated}

// ParseMode reports whether s names a known mode.
func ParseMode(s string) (Mode, bool) {
	for _, m := range Modes {
		if string(m) == s {
			return m, true
		}
	}
	return ModeDefault, false
}

// Document is one output file: a name without extension and its pages, one
// image path per page.
type Document struct {
	Name  string   `json:"name"`
	Pages []string `json:"pages"`
}

// Plan lays out the finished fronts and the shared back into documents.
func Plan(mode Mode, back string, fronts []string) ([]Document, error) {
	if len(fronts) == 0 {
		return nil, fmt.Errorf("planning %s documents: %w", mode, cards.ErrEmptyAssetSet)
	}

	switch mode {
	case ModeSeparated:
		backs := make([]string, len(fronts))
		for i := range backs {
			backs[i] = back
		}
		return []Document{
			{Name: "cards_fronts", Pages: append([]string(nil), fronts...)},
			{Name: "cards_backs", Pages: backs},
		}, nil

	case ModeAlternated:
		pages := make([]string, 0, 2*len(fronts))
		for _, f := range fronts {
			pages = append(pages, back, f)
		}
		return []Document{{Name: "cards_alternated", Pages: pages}}, nil

	case ModeDefault:
		pages := make([]string, 0, len(fronts)+1)
		pages = append(pages, back)
		pages = append(pages, fronts...)
		return []Document{{Name: "cards_default", Pages: pages}}, nil

	default:
		return nil, fmt.Errorf("unknown pdf format %q", mode)
	}
}
