package matching

import (
	"math"
	"sort"
)

// Entry is a single non-zero weight at a vocabulary position.
type Entry struct {
	Index  int     `json:"i"`
	Weight float64 `json:"w"`
}

// Vector is a sparse vector over the vocabulary, always sorted by Index.
// An empty Vector is the zero vector.
type Vector []Entry

// Magnitude returns the Euclidean length of v.
func (v Vector) Magnitude() float64 {
	var sum float64
	for _, e := range v {
		sum += e.Weight * e.Weight
	}
	return math.Sqrt(sum)
}

func newVector(weights map[int]float64) Vector {
	if len(weights) == 0 {
		return nil
	}
	v := make(Vector, 0, len(weights))
	for idx, w := range weights {
		if w > 0 {
			v = append(v, Entry{Index: idx, Weight: w})
		}
	}
	sort.Slice(v, func(i, j int) bool {
		return v[i].Index < v[j].Index
	})
	return v
}

func (v Vector) normalize() Vector {
	norm := v.Magnitude()
	if norm == 0 {
		return v
	}
	for i := range v {
		v[i].Weight /= norm
	}
	return v
}
