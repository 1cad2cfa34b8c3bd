package bookmarks

import "testing"

func TestFilter(t *testing.T) {
	movies := []BookmarkedMovie{
		{ID: 1, Title: "The Matrix"},
		{ID: 2, Title: "Inception"},
		{ID: 3, Title: "Interstellar"},
	}

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"blank returns all", "  ", []int{1, 2, 3}},
		{"exact word", "matrix", []int{1}},
		{"fuzzy subsequence", "incp", []int{2}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(movies, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Filter(%q) returned %d movies, want %d", tt.query, len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("Filter(%q)[%d].ID = %d, want %d", tt.query, i, got[i].ID, id)
				}
			}
		})
	}
}
