package matching

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b Vector
		want float64
	}{
		{name: "both zero", a: nil, b: nil, want: 0},
		{name: "one zero", a: Vector{{Index: 0, Weight: 1}}, b: Vector{}, want: 0},
		{name: "identical", a: Vector{{0, 0.6}, {2, 0.8}}, b: Vector{{0, 0.6}, {2, 0.8}}, want: 1},
		{name: "disjoint", a: Vector{{0, 1}}, b: Vector{{1, 1}}, want: 0},
		{name: "scaled", a: Vector{{1, 2}, {3, 2}}, b: Vector{{1, 1}, {3, 1}}, want: 1},
		{name: "partial", a: Vector{{0, 1}, {1, 1}}, b: Vector{{1, 1}, {2, 1}}, want: 0.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Similarity(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("Similarity = %v, want %v", got, tc.want)
			}
			if back := Similarity(tc.b, tc.a); back != got {
				t.Fatalf("not symmetric: %v vs %v", got, back)
			}
			if got < 0 || got > 1 {
				t.Fatalf("out of bounds: %v", got)
			}
		})
	}
}

func TestSimilaritySymmetricOnCorpus(t *testing.T) {
	m := fittedModel(t,
		internship(1, "Data Analyst", "python", "sql"),
		internship(2, "Data Engineer", "python", "spark"),
		internship(3, "UX Designer", "figma"),
	)
	st := m.current.Load()

	vectors := append([]Vector{nil}, st.vectors...)
	for i := range vectors {
		for j := range vectors {
			if Similarity(vectors[i], vectors[j]) != Similarity(vectors[j], vectors[i]) {
				t.Fatalf("similarity(%d,%d) is not symmetric", i, j)
			}
		}
		if Similarity(vectors[i], nil) != 0 {
			t.Fatalf("similarity with zero vector must be exactly 0")
		}
	}
}
