package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	t.Run("same point is zero", func(t *testing.T) {
		assert.Zero(t, DistanceKm(37.7749, -122.4194, 37.7749, -122.4194))
	})

	t.Run("symmetric", func(t *testing.T) {
		d1 := DistanceKm(37.7749, -122.4194, 40.7128, -74.0060)
		d2 := DistanceKm(40.7128, -74.0060, 37.7749, -122.4194)
		assert.Equal(t, d1, d2)
	})

	t.Run("short hop across san francisco", func(t *testing.T) {
		d := DistanceKm(37.7749, -122.4194, 37.7849, -122.4094)
		assert.InDelta(t, 1.42, d, 0.05)
	})

	t.Run("san francisco to new york", func(t *testing.T) {
		d := DistanceKm(37.7749, -122.4194, 40.7128, -74.0060)
		assert.InDelta(t, 4130, d, 30)
	})
}

func TestAnswerSimilarity(t *testing.T) {
	tests := []struct {
		name   string
		value1 string
		value2 string
		want   float64
	}{
		{"exact match", "Hiking", "Hiking", 1.0},
		{"exact match multi-select", "Cooking,Reading", "Cooking,Reading", 1.0},
		{"jaccard overlap", "Cooking,Reading", "Reading,Music", 1.0 / 3.0},
		{"jaccard no overlap", "Cooking,Reading", "Music,Dancing", 0.0},
		{"jaccard with whitespace", "Cooking, Reading", "Reading , Music", 1.0 / 3.0},
		{"numeric on 1-5 scale", "3", "5", 0.6},
		{"numeric clamped at zero", "1", "9", 0.0},
		{"substring case-insensitive", "rock", "Rock climbing", 0.5},
		{"unrelated strings", "Morning", "Evening", 0.1},
		{"numeric vs text falls through", "3", "three", 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AnswerSimilarity(tt.value1, tt.value2), 1e-9)
		})
	}
}

func TestAnswerSimilarityIdentity(t *testing.T) {
	for _, v := range []string{"a", "Cooking,Reading", "3", "  spaced  "} {
		assert.Equal(t, 1.0, AnswerSimilarity(v, v), "identity for %q", v)
	}
}

func TestAnswerSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Cooking,Reading", "Reading,Music"},
		{"3", "5"},
		{"rock", "Rock climbing"},
		{"Morning", "Evening"},
		{"Cooking,Reading", "Cooking"},
	}
	for _, p := range pairs {
		assert.Equal(t, AnswerSimilarity(p[0], p[1]), AnswerSimilarity(p[1], p[0]),
			"symmetry for %q vs %q", p[0], p[1])
	}
}
