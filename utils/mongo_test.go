package utils

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		skip  int64
		limit int64
	}{
		{"defaults", "/api/orders", 0, 50},
		{"second page", "/api/orders?page=2&limit=20", 20, 20},
		{"limit clamped to max", "/api/orders?limit=9999", 0, 200},
		{"garbage falls back", "/api/orders?page=x&limit=-3", 0, 50},
		{"zero page falls back", "/api/orders?page=0", 0, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			skip, limit := ParsePagination(r, 50, 200)
			if skip != tt.skip || limit != tt.limit {
				t.Errorf("got skip=%d limit=%d, want skip=%d limit=%d", skip, limit, tt.skip, tt.limit)
			}
		})
	}
}

func TestParseSort(t *testing.T) {
	def := bson.D{{Key: "createdAt", Value: -1}}
	allowed := map[string]bson.D{
		"old": {{Key: "createdAt", Value: 1}},
	}

	if got := ParseSort("old", def, allowed); got[0].Value != 1 {
		t.Errorf("known key: got %v", got)
	}
	if got := ParseSort("bogus", def, allowed); got[0].Value != -1 {
		t.Errorf("unknown key should fall back: got %v", got)
	}
	if got := ParseSort("", def, allowed); got[0].Value != -1 {
		t.Errorf("empty key should fall back: got %v", got)
	}
}
