package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"lnzh/models"
	"lnzh/slots"
)

// memoryReserver implements SlotReserver without a database. The mutex
// gives the same check-then-increment atomicity the Mongo transaction does.
type memoryReserver struct {
	mu     sync.Mutex
	counts map[string]int
	orders []models.Order
}

func newMemoryReserver() *memoryReserver {
	return &memoryReserver{counts: make(map[string]int)}
}

func (m *memoryReserver) Reserve(_ context.Context, key string, capacity int, order models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts[key] >= capacity {
		return ErrSlotFull
	}
	m.counts[key]++
	m.orders = append(m.orders, order)
	return nil
}

func (m *memoryReserver) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts[key] > 0 {
		m.counts[key]--
	}
	return nil
}

func TestReserveEnforcesCapacity(t *testing.T) {
	res := newMemoryReserver()
	key := "2026-03-14_07:45"

	for i := 0; i < slots.DefaultCapacity; i++ {
		if err := res.Reserve(context.Background(), key, slots.DefaultCapacity, models.Order{}); err != nil {
			t.Fatalf("reserve %d failed: %v", i, err)
		}
	}

	err := res.Reserve(context.Background(), key, slots.DefaultCapacity, models.Order{})
	if !errors.Is(err, ErrSlotFull) {
		t.Fatalf("expected ErrSlotFull, got %v", err)
	}
	if res.counts[key] != slots.DefaultCapacity {
		t.Errorf("count = %d after rejected reserve", res.counts[key])
	}
	if len(res.orders) != slots.DefaultCapacity {
		t.Errorf("orders = %d, want %d", len(res.orders), slots.DefaultCapacity)
	}
}

func TestReserveConcurrentAttempts(t *testing.T) {
	const attempts = 40
	const capacity = 10

	res := newMemoryReserver()
	key := "2026-03-14_08:00"

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- res.Reserve(context.Background(), key, capacity, models.Order{})
		}()
	}
	wg.Wait()
	close(results)

	succeeded, full := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotFull):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if succeeded != capacity {
		t.Errorf("succeeded = %d, want %d", succeeded, capacity)
	}
	if full != attempts-capacity {
		t.Errorf("rejected = %d, want %d", full, attempts-capacity)
	}
	if res.counts[key] != capacity {
		t.Errorf("final count = %d, want %d", res.counts[key], capacity)
	}
}

func TestReleaseFloorsAtZero(t *testing.T) {
	res := newMemoryReserver()
	key := "2026-03-14_07:30"

	if err := res.Release(context.Background(), key); err != nil {
		t.Fatalf("release on missing counter: %v", err)
	}
	if res.counts[key] != 0 {
		t.Errorf("count went negative: %d", res.counts[key])
	}
}

func TestSlotMinutes(t *testing.T) {
	tests := []struct {
		value string
		want  int
		ok    bool
	}{
		{"07:30", 450, true},
		{"08:15", 495, true},
		{"07:32", 0, false}, // off-grid
		{"07:25", 0, false}, // before window
		{"08:20", 0, false}, // after window
		{"bogus", 0, false},
	}
	for _, tt := range tests {
		got, ok := slotMinutes(slots.CoffeeWindow, tt.value)
		if ok != tt.ok || got != tt.want {
			t.Errorf("slotMinutes(%q) = %d,%v want %d,%v", tt.value, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDrinkRules(t *testing.T) {
	if !requiresTemp("Latte") || !requiresTemp("Americano") {
		t.Error("Latte and Americano need a temp choice")
	}
	if requiresTemp("Matcha") {
		t.Error("Matcha has no temp choice")
	}
	if !requiresMilk("Latte") || requiresMilk("Americano") {
		t.Error("only Latte needs a milk choice")
	}
}
