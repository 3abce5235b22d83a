package thoughts

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"lnzh/models"
)

// Stream view modes.
const (
	ModeAll    = "all"
	ModeFavs   = "favs"
	ModeRandom = "random"
)

// Query describes one thought-stream view: a free-text search, a view
// mode, a sort key and an optional reversal. Favs holds the indexes the
// visitor has liked; it only matters in favs mode.
type Query struct {
	Mode     string
	Sort     string
	Search   string
	Reversed bool
	Favs     []int
}

// Result is a filtered view plus the "N of M" counts shown next to it.
type Result struct {
	Thoughts []models.Thought
	Shown    int
	Total    int
}

var streamRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// FilterStream applies q to the full thought list. Random mode picks a
// single thought from the matches and skips sorting; every other mode
// sorts the survivors by q.Sort, newest first by default.
func FilterStream(all []models.Thought, q Query) Result {
	filtered := make([]models.Thought, 0, len(all))

	term := strings.ToLower(strings.TrimSpace(q.Search))
	for _, t := range all {
		if term != "" && !strings.Contains(strings.ToLower(t.Text), term) {
			continue
		}
		filtered = append(filtered, t)
	}

	if q.Mode == ModeFavs {
		favs := map[int]bool{}
		for _, i := range q.Favs {
			favs[i] = true
		}
		kept := filtered[:0]
		for _, t := range filtered {
			if favs[t.Index] {
				kept = append(kept, t)
			}
		}
		filtered = kept
	}

	if q.Mode == ModeRandom {
		if len(filtered) > 0 {
			filtered = []models.Thought{filtered[streamRand.Intn(len(filtered))]}
		}
		return Result{Thoughts: filtered, Shown: len(filtered), Total: len(all)}
	}

	sortStream(filtered, q.Sort)
	if q.Reversed {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	return Result{Thoughts: filtered, Shown: len(filtered), Total: len(all)}
}

func sortStream(ts []models.Thought, key string) {
	switch key {
	case "length":
		sort.SliceStable(ts, func(i, j int) bool {
			return len(ts[i].Text) > len(ts[j].Text)
		})
	case "likes":
		sort.SliceStable(ts, func(i, j int) bool {
			return ts[i].Likes > ts[j].Likes
		})
	default: // date, newest first
		sort.SliceStable(ts, func(i, j int) bool {
			return ts[i].Date.After(ts[j].Date)
		})
	}
}
