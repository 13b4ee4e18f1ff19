package parallel

import (
	"sync"
	"testing"
)

func TestSplitRows(t *testing.T) {
	tests := []struct {
		name   string
		height int
		n      int
		want   []Band
	}{
		{"even", 8, 4, []Band{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"remainder first", 7, 3, []Band{{0, 3}, {3, 5}, {5, 7}}},
		{"more bands than rows", 2, 5, []Band{{0, 1}, {1, 2}}},
		{"non-positive n", 3, 0, []Band{{0, 3}}},
		{"empty", 0, 4, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitRows(tt.height, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitRows(%d, %d) = %v, want %v", tt.height, tt.n, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("band %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestForEachBandCoversEveryRowOnce(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	const height = 101
	var mu sync.Mutex
	seen := make([]int, height)

	pool.ForEachBand(height, 4, func(b Band) {
		mu.Lock()
		defer mu.Unlock()
		for y := b.Y0; y < b.Y1; y++ {
			seen[y]++
		}
	})

	for y, n := range seen {
		if n != 1 {
			t.Errorf("row %d visited %d times, want 1", y, n)
		}
	}
}
