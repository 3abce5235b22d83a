package comments

import (
	"testing"
	"time"

	"lnzh/models"
)

func comment(id, parent string, created time.Time) models.Comment {
	return models.Comment{CommentID: id, ParentID: parent, CreatedAt: created}
}

func rootIDs(roots []*ThreadedComment) []string {
	ids := make([]string, len(roots))
	for i, r := range roots {
		ids[i] = r.CommentID
	}
	return ids
}

func TestBuildThread(t *testing.T) {
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	t.Run("replies nest under parents", func(t *testing.T) {
		roots := BuildThread([]models.Comment{
			comment("1", "", base),
			comment("2", "1", base.Add(time.Minute)),
			comment("3", "1", base.Add(2*time.Minute)),
			comment("4", "2", base.Add(3*time.Minute)),
		})
		if len(roots) != 1 || roots[0].CommentID != "1" {
			t.Fatalf("roots = %v", rootIDs(roots))
		}
		if len(roots[0].Replies) != 2 {
			t.Fatalf("replies = %d, want 2", len(roots[0].Replies))
		}
		if roots[0].Replies[0].CommentID != "2" || roots[0].Replies[1].CommentID != "3" {
			t.Error("replies lost creation order")
		}
		if len(roots[0].Replies[0].Replies) != 1 || roots[0].Replies[0].Replies[0].CommentID != "4" {
			t.Error("nested reply not attached")
		}
	})

	t.Run("orphaned parent degrades to root", func(t *testing.T) {
		roots := BuildThread([]models.Comment{
			comment("1", "", base),
			comment("2", "1", base.Add(time.Minute)),
			comment("3", "99", base.Add(2*time.Minute)),
		})
		got := rootIDs(roots)
		if len(got) != 2 || got[0] != "1" || got[1] != "3" {
			t.Errorf("roots = %v, want [1 3]", got)
		}
	})

	t.Run("every comment appears exactly once", func(t *testing.T) {
		input := []models.Comment{
			comment("a", "", base),
			comment("b", "a", base),
			comment("c", "", base),
			comment("d", "c", base),
			comment("e", "missing", base),
		}
		seen := map[string]int{}
		var walk func(nodes []*ThreadedComment)
		walk = func(nodes []*ThreadedComment) {
			for _, n := range nodes {
				seen[n.CommentID]++
				walk(n.Replies)
			}
		}
		walk(BuildThread(input))
		for _, c := range input {
			if seen[c.CommentID] != 1 {
				t.Errorf("comment %s seen %d times", c.CommentID, seen[c.CommentID])
			}
		}
	})
}

func TestSortRootsStable(t *testing.T) {
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	// Equal likes: input order must survive.
	roots := BuildThread([]models.Comment{
		{CommentID: "a", Likes: 3, CreatedAt: base},
		{CommentID: "b", Likes: 5, CreatedAt: base.Add(time.Minute)},
		{CommentID: "c", Likes: 3, CreatedAt: base.Add(2 * time.Minute)},
	})

	got := rootIDs(SortRoots(roots, "likes", false))
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("likes sort = %v, want %v", got, want)
		}
	}

	got = rootIDs(SortRoots(roots, "likes", true))
	want = []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("reversed likes sort = %v, want %v", got, want)
		}
	}
}

func TestSortRootsByTime(t *testing.T) {
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	roots := BuildThread([]models.Comment{
		comment("old", "", base),
		comment("mid", "", base.Add(time.Hour)),
		comment("new", "", base.Add(2*time.Hour)),
	})

	if got := rootIDs(SortRoots(roots, "new", false)); got[0] != "new" || got[2] != "old" {
		t.Errorf("new sort = %v", got)
	}
	if got := rootIDs(SortRoots(roots, "old", false)); got[0] != "old" || got[2] != "new" {
		t.Errorf("old sort = %v", got)
	}
	// Ties on identical timestamps keep input order.
	tied := BuildThread([]models.Comment{
		comment("x", "", base),
		comment("y", "", base),
	})
	if got := rootIDs(SortRoots(tied, "new", false)); got[0] != "x" || got[1] != "y" {
		t.Errorf("tie order = %v, want [x y]", got)
	}
}

func TestAverageRating(t *testing.T) {
	mk := func(ratings ...int) []*ThreadedComment {
		var out []*ThreadedComment
		for _, r := range ratings {
			out = append(out, &ThreadedComment{Comment: models.Comment{Rating: r}})
		}
		return out
	}

	t.Run("unrated roots excluded", func(t *testing.T) {
		avg, ok := AverageRating(mk(5, 0, 3, 0))
		if !ok || avg != 4.0 {
			t.Errorf("avg = %v,%v want 4.0,true", avg, ok)
		}
	})

	t.Run("rounds to nearest half", func(t *testing.T) {
		avg, ok := AverageRating(mk(5, 4, 4)) // 4.333 -> 4.5
		if !ok || avg != 4.5 {
			t.Errorf("avg = %v,%v want 4.5,true", avg, ok)
		}
	})

	t.Run("no ratings", func(t *testing.T) {
		if _, ok := AverageRating(mk(0, 0)); ok {
			t.Error("expected ok=false with no rated roots")
		}
	})
}

func TestStars(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{5, "★★★★★"},
		{4.5, "★★★★⯪"},
		{3, "★★★☆☆"},
		{0.5, "⯪☆☆☆☆"},
	}
	for _, tt := range tests {
		if got := Stars(tt.avg); got != tt.want {
			t.Errorf("Stars(%v) = %q, want %q", tt.avg, got, tt.want)
		}
	}
}
