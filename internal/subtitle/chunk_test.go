package subtitle

import (
	"reflect"
	"testing"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		size  int
		want  [][]int
	}{
		{
			name:  "remainder in last group",
			items: []int{1, 2, 3, 4, 5},
			size:  2,
			want:  [][]int{{1, 2}, {3, 4}, {5}},
		},
		{
			name:  "empty input",
			items: []int{},
			size:  3,
			want:  nil,
		},
		{
			name:  "evenly divisible",
			items: []int{1, 2, 3},
			size:  3,
			want:  [][]int{{1, 2, 3}},
		},
		{
			name:  "size larger than input",
			items: []int{1, 2},
			size:  10,
			want:  [][]int{{1, 2}},
		},
		{
			name:  "size one",
			items: []int{1, 2, 3},
			size:  1,
			want:  [][]int{{1}, {2}, {3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Chunk(tt.items, tt.size)
			if err != nil {
				t.Fatalf("Chunk returned error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Chunk(%v, %d) = %v, want %v",
					tt.items, tt.size, got, tt.want)
			}
		})
	}
}

func TestChunkRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := Chunk([]int{1, 2, 3}, size); err == nil {
			t.Errorf("Chunk(size=%d) expected error, got nil", size)
		}
	}
}

func TestChunkSegments(t *testing.T) {
	segments := []Segment{
		{Index: 1, Text: "a"},
		{Index: 2, Text: "b"},
		{Index: 3, Text: "c"},
	}
	groups, err := Chunk(segments, 2)
	if err != nil {
		t.Fatalf("Chunk returned error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0][0].Index != 1 || groups[1][0].Index != 3 {
		t.Errorf("order not preserved: %+v", groups)
	}
}
