package slots

import (
	"testing"
	"time"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2026, 3, 14, hour, min, sec, 0, time.Local)
}

func TestGenerate(t *testing.T) {
	grid := Generate(CoffeeWindow)
	if len(grid) != 10 {
		t.Fatalf("expected 10 slots, got %d", len(grid))
	}
	if grid[0].Value != "07:30" || grid[0].Label != "7:30 AM" {
		t.Errorf("first slot = %q/%q", grid[0].Value, grid[0].Label)
	}
	if grid[len(grid)-1].Value != "08:15" {
		t.Errorf("last slot = %q", grid[len(grid)-1].Value)
	}
	for i := 1; i < len(grid); i++ {
		if grid[i].Minutes != grid[i-1].Minutes+CoffeeWindow.Interval {
			t.Fatalf("grid not evenly stepped at index %d", i)
		}
	}
}

func TestEarliestBookable(t *testing.T) {
	tests := []struct {
		name  string
		now   time.Time
		today bool
		want  int
	}{
		{"other day ignores clock", at(12, 0, 0), false, 450},
		{"before window opens", at(7, 20, 0), true, 450},
		{"mid window rounds up", at(7, 42, 0), true, 465},
		{"exact multiple stays", at(7, 45, 0), true, 465},
		{"midslot rounds to next", at(7, 47, 0), true, 470},
		{"seconds push past multiple", at(7, 45, 30), true, 470},
		{"past window end", at(8, 20, 0), true, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EarliestBookable(CoffeeWindow, tt.now, tt.today)
			if got != tt.want {
				t.Errorf("EarliestBookable = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWindowClosed(t *testing.T) {
	if WindowClosed(CoffeeWindow, at(8, 20, 0), false) {
		t.Error("window must never be closed for another day")
	}
	if !WindowClosed(CoffeeWindow, at(8, 20, 0), true) {
		t.Error("expected window closed after 8:15 today")
	}
	if WindowClosed(CoffeeWindow, at(8, 10, 0), true) {
		t.Error("window still open at 8:10")
	}
}

func TestCapacityFor(t *testing.T) {
	if got := CapacityFor(7*60 + 30); got != DefaultCapacity {
		t.Errorf("7:30 capacity = %d", got)
	}
	if got := CapacityFor(8 * 60); got != HighCapacity {
		t.Errorf("8:00 capacity = %d", got)
	}
	if got := CapacityFor(8*60 + 15); got != HighCapacity {
		t.Errorf("8:15 capacity = %d", got)
	}
}

func TestAvailable(t *testing.T) {
	t.Run("filters past and full slots", func(t *testing.T) {
		counts := map[string]int{
			"07:50": DefaultCapacity, // full
			"08:00": HighCapacity,    // full even at rush capacity
			"08:05": HighCapacity - 1,
		}
		got := Available(CoffeeWindow, at(7, 47, 0), true, counts)

		want := []string{"07:55", "08:05", "08:10", "08:15"}
		if len(got) != len(want) {
			t.Fatalf("got %d slots, want %d", len(got), len(want))
		}
		for i, v := range want {
			if got[i].Value != v {
				t.Errorf("slot %d = %q, want %q", i, got[i].Value, v)
			}
		}
	})

	t.Run("closed window yields nothing", func(t *testing.T) {
		if got := Available(CoffeeWindow, at(9, 0, 0), true, nil); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("other day offers full grid", func(t *testing.T) {
		got := Available(CoffeeWindow, at(9, 0, 0), false, map[string]int{})
		if len(got) != 10 {
			t.Errorf("expected 10 slots, got %d", len(got))
		}
	})

	t.Run("all full is empty but distinct from closed", func(t *testing.T) {
		counts := map[string]int{}
		for _, s := range Generate(CoffeeWindow) {
			counts[s.Value] = CapacityFor(s.Minutes)
		}
		if got := Available(CoffeeWindow, at(7, 0, 0), true, counts); len(got) != 0 {
			t.Errorf("expected no slots, got %v", got)
		}
		if WindowClosed(CoffeeWindow, at(7, 0, 0), true) {
			t.Error("window is open at 7:00 even when every slot is full")
		}
	})
}
