package vector

import (
	"hash/fnv"
	"math"
)

// Norm returns the Euclidean length of v.
func Norm(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Cosine computes cosine similarity between two dense vectors.
// Returns 0 if either vector is zero or the lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}
	dotProduct, normA, normB := 0.0, 0.0, 0.0
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Centroid averages vectors component-wise. Vectors whose length differs
// from the first non-empty one are ignored. Returns nil for no input.
func Centroid(vectors [][]float64) []float64 {
	var sum []float64
	n := 0
	for _, v := range vectors {
		if len(v) == 0 {
			continue
		}
		if sum == nil {
			sum = make([]float64, len(v))
		}
		if len(v) != len(sum) {
			continue
		}
		for i, x := range v {
			sum[i] += x
		}
		n++
	}
	if n == 0 {
		return nil
	}
	for i := range sum {
		sum[i] /= float64(n)
	}
	return sum
}

// MeanPairwise computes the mean cosine similarity over every unordered pair
// of vectors. Pairs that contain a zero vector are skipped. The second result
// is false when no valid pair exists.
func MeanPairwise(vectors [][]float64) (float64, bool) {
	norms := make([]float64, len(vectors))
	for i, v := range vectors {
		norms[i] = Norm(v)
	}
	total, pairs := 0.0, 0
	for i := 0; i < len(vectors); i++ {
		if norms[i] == 0 {
			continue
		}
		for j := i + 1; j < len(vectors); j++ {
			if norms[j] == 0 {
				continue
			}
			total += Cosine(vectors[i], vectors[j])
			pairs++
		}
	}
	if pairs == 0 {
		return 0, false
	}
	return total / float64(pairs), true
}

// Hasher builds fixed-size pseudo-embeddings from character n-grams. Words
// that share n-grams get similar vectors, which is enough for the
// similarity-based measures when no trained model is available.
type Hasher struct {
	Dim int
	N   int
}

// DefaultHasher produces 64-dimensional trigram vectors.
var DefaultHasher = Hasher{Dim: 64, N: 3}

// Embed returns the L2-normalized n-gram vector of word. Empty input yields
// a zero vector.
func (h Hasher) Embed(word string) []float64 {
	vec := make([]float64, h.Dim)
	if word == "" || h.Dim <= 0 {
		return vec
	}
	runes := []rune("<" + word + ">")
	n := h.N
	if n <= 0 || n > len(runes) {
		n = len(runes)
	}
	for i := 0; i+n <= len(runes); i++ {
		f := fnv.New64a()
		_, _ = f.Write([]byte(string(runes[i : i+n])))
		sum := f.Sum64()
		idx := int(sum % uint64(h.Dim))
		// The next bit picks the sign so that collisions tend to cancel out.
		if (sum>>32)&1 == 1 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}
	if norm := Norm(vec); norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
