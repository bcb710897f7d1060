package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"empty series", nil, 0},
		{"single value", []float64{42}, 42},
		{"simple series", []float64{2, 4, 6}, 4},
		{"negative values", []float64{-2, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Mean(tt.values), 1e-9)
		})
	}
}

func TestVariance(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"empty series", nil, 0},
		{"constant series", []float64{5, 5, 5}, 0},
		{"population variance", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Variance(tt.values), 1e-9)
		})
	}
}

func TestStdDev(t *testing.T) {
	assert.InDelta(t, 2, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
	assert.Zero(t, StdDev(nil))

	// Чередование 07:00/11:00 в минутах дает разброс ровно в 120 минут
	assert.InDelta(t, 120, StdDev([]float64{420, 660, 420, 660}), 1e-9)
}
