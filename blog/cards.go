package blog

import (
	"sort"
	"strings"

	"lnzh/models"
)

// Tag priority order; symbols keep their Greek origins (philosophia,
// idios, gastronomia, dialektike).
var tagOrder = []string{"favourites", "philosophy", "life", "food", "dialectic"}

var tagSymbols = map[string]string{
	"favourites": "✭",
	"philosophy": "φ",
	"life":       "ι",
	"food":       "γ",
	"dialectic":  "δ",
}

func tagRank(tag string) int {
	for i, t := range tagOrder {
		if t == tag {
			return i
		}
	}
	return len(tagOrder)
}

func hasTag(p models.BlogPost, tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// PrimaryTag is the highest-priority tag a post carries. Posts with no
// known tag rank after everything else.
func PrimaryTag(p models.BlogPost) string {
	best := ""
	for _, t := range tagOrder {
		if hasTag(p, t) {
			best = t
			break
		}
	}
	return best
}

// Symbols renders a post's tag glyphs in priority order, space joined.
func Symbols(p models.BlogPost) string {
	var parts []string
	for _, t := range tagOrder {
		if hasTag(p, t) {
			parts = append(parts, tagSymbols[t])
		}
	}
	return strings.Join(parts, " ")
}

// SortCards orders posts by primary-tag priority, then year descending.
// The input is not mutated.
func SortCards(posts []models.BlogPost) []models.BlogPost {
	out := make([]models.BlogPost, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := tagRank(PrimaryTag(out[i])), tagRank(PrimaryTag(out[j]))
		if ri != rj {
			return ri < rj
		}
		return out[i].Year > out[j].Year
	})
	return out
}

// FilterCards keeps posts carrying ALL the selected tags. An empty
// selection, or one containing "all", keeps everything.
func FilterCards(posts []models.BlogPost, tags []string) []models.BlogPost {
	selected := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if t == "all" {
			return SortCards(posts)
		}
		selected = append(selected, t)
	}
	if len(selected) == 0 {
		return SortCards(posts)
	}

	var out []models.BlogPost
	for _, p := range posts {
		matches := true
		for _, t := range selected {
			if !hasTag(p, t) {
				matches = false
				break
			}
		}
		if matches {
			out = append(out, p)
		}
	}
	return SortCards(out)
}
