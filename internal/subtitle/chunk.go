package subtitle

import "fmt"

// Chunk partitions items into consecutive groups of the given size. The last
// group holds the remainder when the length is not evenly divisible. Relative
// order is preserved both across and within groups; the returned groups share
// backing storage with the input slice.
func Chunk[T any](items []T, size int) ([][]T, error) {
	if size < 1 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}

	var groups [][]T
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		groups = append(groups, items[i:end])
	}
	return groups, nil
}
