package comments

import (
	"math"
	"sort"
	"strings"

	"lnzh/models"
)

// ThreadedComment is a comment with its replies attached. Replies keep
// load order, which is creation order since the backing query sorts by
// createdAt ascending.
type ThreadedComment struct {
	models.Comment
	Replies []*ThreadedComment `json:"replies"`
}

// BuildThread turns a flat, creation-ordered comment list into a forest.
// A reply whose parent is missing from the set degrades to a root instead
// of being dropped.
func BuildThread(comments []models.Comment) []*ThreadedComment {
	byID := make(map[string]*ThreadedComment, len(comments))
	nodes := make([]*ThreadedComment, len(comments))
	for i, c := range comments {
		node := &ThreadedComment{Comment: c, Replies: []*ThreadedComment{}}
		byID[c.CommentID] = node
		nodes[i] = node
	}

	var roots []*ThreadedComment
	for _, node := range nodes {
		if node.ParentID != "" {
			if parent, ok := byID[node.ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// SortRoots orders root comments by the chosen key. Ties keep their input
// order, which matters because createdAt resolution is coarse enough for
// near-simultaneous comments to collide.
func SortRoots(roots []*ThreadedComment, key string, reversed bool) []*ThreadedComment {
	out := make([]*ThreadedComment, len(roots))
	copy(out, roots)

	switch key {
	case "old":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case "likes":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Likes > out[j].Likes
		})
	default: // "new"
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	if reversed {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// AverageRating is the mean of rated root comments, rounded to the nearest
// half star. Unrated roots count toward neither numerator nor denominator.
// The second return is false when nothing is rated.
func AverageRating(roots []*ThreadedComment) (float64, bool) {
	sum, n := 0, 0
	for _, root := range roots {
		if root.Rating >= 1 && root.Rating <= 5 {
			sum += root.Rating
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	avg := float64(sum) / float64(n)
	return math.Round(avg*2) / 2, true
}

// Stars renders a half-rounded average as a five-glyph string.
func Stars(avg float64) string {
	full := int(avg)
	half := avg-float64(full) >= 0.5

	empty := 5 - full
	if half {
		empty--
	}

	var b strings.Builder
	for i := 0; i < full; i++ {
		b.WriteRune('★')
	}
	if half {
		b.WriteRune('⯪')
	}
	for i := 0; i < empty; i++ {
		b.WriteRune('☆')
	}
	return b.String()
}
