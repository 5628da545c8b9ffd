package perceptron

// featureCounts is a sparse multiset of feature IDs: Indices[k] occurs Counts[k] times.
// Indices keep first-occurrence order so iteration is deterministic.
type featureCounts struct {
	Indices []int
	Counts  []float64
}

// countFeatures resolves features against the feature symbols and counts occurrences.
// Unknown features are dropped; they carry weight 0 for every class.
func countFeatures(syms *symbols, features []string) featureCounts {
	fc := featureCounts{
		Indices: make([]int, 0, len(features)),
		Counts:  make([]float64, 0, len(features)),
	}
	pos := make(map[int]int, len(features))
	for _, f := range features {
		id, ok := syms.lookup(f)
		if !ok {
			continue
		}
		if k, ok := pos[id]; ok {
			fc.Counts[k]++
			continue
		}
		pos[id] = len(fc.Indices)
		fc.Indices = append(fc.Indices, id)
		fc.Counts = append(fc.Counts, 1)
	}
	return fc
}

// Dot computes the weighted sum of a sparse weight row over the multiset.
func (fc featureCounts) Dot(row map[int]float64) float64 {
	var sum float64
	for k, id := range fc.Indices {
		sum += row[id] * fc.Counts[k]
	}
	return sum
}

// distinct interns every feature and returns the distinct IDs
// in first-occurrence order.
func distinct(syms *symbols, features []string) []int {
	seen := make(map[int]bool, len(features))
	ids := make([]int, 0, len(features))
	for _, f := range features {
		id := syms.intern(f)
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
