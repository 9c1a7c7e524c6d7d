package cards

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

var ErrUnrecognizedRank = errors.New("unrecognized rank")

// Face ranks, including the French V/D/R spellings.
var faceRanks = map[byte]int{
	'J': 11, 'V': 11,
	'Q': 12, 'D': 12,
	'K': 13, 'R': 13,
	'A': 14,
}

// OrderingKey returns the (color, rank) sort key of a finished image.
// The rank is read from the last character of the file stem, so "10" is
// written as a trailing 0.
func OrderingKey(path string) (string, int, error) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return "", 0, fmt.Errorf("%w: empty card name %q", ErrUnrecognizedRank, path)
	}

	color := stem
	if i := strings.LastIndexByte(stem, '_'); i >= 0 {
		color = stem[:i]
	}

	tok := stem[len(stem)-1]
	if tok >= '0' && tok <= '9' {
		rank := int(tok - '0')
		if rank == 0 {
			rank = 10
		}
		return color, rank, nil
	}
	if rank, ok := faceRanks[tok]; ok {
		return color, rank, nil
	}
	return "", 0, fmt.Errorf("%w: %q in %q", ErrUnrecognizedRank, string(tok), path)
}

type keyed struct {
	path  string
	color string
	rank  int
}

// SortDescending orders paths by color then rank, both descending.
func SortDescending(paths []string) error {
	items := make([]keyed, len(paths))
	for i, p := range paths {
		color, rank, err := OrderingKey(p)
		if err != nil {
			return err
		}
		items[i] = keyed{path: p, color: color, rank: rank}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].color != items[j].color {
			return items[i].color > items[j].color
		}
		return items[i].rank > items[j].rank
	})

	for i, it := range items {
		paths[i] = it.path
	}
	return nil
}
