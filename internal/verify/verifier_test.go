package verify

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	a := []float32{1, 2, 3}
	if got := cosine(a, a); math.Abs(got-1) > 1e-9 {
		t.Errorf("cosine(a, a) = %v, want 1", got)
	}
	if got := cosine([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Errorf("orthogonal: %v, want 0", got)
	}
	if got := cosine([]float32{1, 0}, []float32{-1, 0}); math.Abs(got+1) > 1e-9 {
		t.Errorf("opposite: %v, want -1", got)
	}
	if got := cosine(nil, nil); got != 0 {
		t.Errorf("empty vectors: %v, want 0", got)
	}
	if got := cosine([]float32{1, 2}, []float32{1}); got != 0 {
		t.Errorf("length mismatch: %v, want 0", got)
	}
	if got := cosine([]float32{0, 0}, []float32{1, 1}); got != 0 {
		t.Errorf("zero vector: %v, want 0", got)
	}
}

func TestBucket(t *testing.T) {
	for _, tc := range []struct {
		sim  float64
		want Status
	}{
		{0.95, Confirmed},
		{0.81, Confirmed},
		{0.8, Unclear},
		{0.6, Unclear},
		{0.5, LikelyFake},
		{0.1, LikelyFake},
		{-1, LikelyFake},
	} {
		if got := bucket(tc.sim); got != tc.want {
			t.Errorf("bucket(%v) = %v, want %v", tc.sim, got, tc.want)
		}
	}
}
