package board

import (
	"fmt"
	"slices"
)

// Shuffler permutes n elements in place through swap.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Build lays out a fresh board for level. When shuffleCatalog is set the
// catalog is permuted before the first GroupCount faces are taken, so runs
// with different seeds see different faces; otherwise faces are taken in
// catalog order. Every card starts Hidden.
func Build(level Level, catalog []Face, sh Shuffler, shuffleCatalog bool) (Board, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}
	groups := level.GroupCount()
	if len(catalog) < groups {
		return nil, &ConfigError{
			Level:  level.Name,
			Reason: fmt.Sprintf("need %d faces, catalog has %d", groups, len(catalog)),
		}
	}
	if err := checkDistinct(catalog); err != nil {
		return nil, err
	}

	faces := slices.Clone(catalog)
	if shuffleCatalog {
		sh.Shuffle(len(faces), func(i, j int) {
			faces[i], faces[j] = faces[j], faces[i]
		})
	}

	cards := make(Board, 0, level.TotalCards)
	for _, f := range faces[:groups] {
		for range level.GroupSize {
			cards = append(cards, Card{Identity: f.Identity, Face: f.Display, Visibility: Hidden})
		}
	}

	sh.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards, nil
}

func checkDistinct(catalog []Face) error {
	seen := make(map[string]struct{}, len(catalog))
	for _, f := range catalog {
		if f.Identity == "" {
			return &ConfigError{Reason: "face with empty identity"}
		}
		if _, dup := seen[f.Identity]; dup {
			return &ConfigError{Reason: fmt.Sprintf("face %q appears more than once", f.Identity)}
		}
		seen[f.Identity] = struct{}{}
	}
	return nil
}
