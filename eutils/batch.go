package eutils

// Batches deduplicates ids (keeping first-seen order) and partitions them into
// consecutive groups of at most size ids.
func Batches(ids []string, size int) [][]string {
	if size < 1 {
		size = 1
	}

	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	out := make([][]string, 0, (len(unique)+size-1)/size)
	for start := 0; start < len(unique); start += size {
		stop := start + size
		if stop > len(unique) {
			stop = len(unique)
		}
		out = append(out, unique[start:stop:stop])
	}

	return out
}
