package cards

import "fmt"

// Card is one (rank, color) pair of the deck. It names the asset folder
// and the finished image.
type Card struct {
	Rank  string `json:"rank"`
	Color string `json:"color"`
}

func (c Card) String() string {
	return c.Color + "_" + c.Rank
}

// FileName returns the finished image name, ext including its dot.
func (c Card) FileName(ext string) string {
	return c.String() + ext
}

// Deck lists every card of ranks × colors, rank-major like the build loop.
func Deck(ranks, colors []string) []Card {
	out := make([]Card, 0, len(ranks)*len(colors))
	for _, r := range ranks {
		for _, c := range colors {
			out = append(out, Card{Rank: r, Color: c})
		}
	}
	return out
}

// Lookup finds a card of the configured vocabulary.
func Lookup(ranks, colors []string, rank, color string) (Card, error) {
	if !contains(ranks, rank) {
		return Card{}, fmt.Errorf("unknown rank %q", rank)
	}
	if !contains(colors, color) {
		return Card{}, fmt.Errorf("unknown color %q", color)
	}
	return Card{Rank: rank, Color: color}, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
