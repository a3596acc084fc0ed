package zdict

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		name  string
		input uint64
		want  uint64
	}{
		{"zero", 0, 1},
		{"one", 1, 1},
		{"two", 2, 2},
		{"three", 3, 4},
		{"pow2 stays", 16, 16},
		{"seventeen", 17, 32},
		{"1000", 1000, 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, nextPowerOfTwo(tt.input))
		})
	}
}

func TestCapacityForEntries(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"zero", 0, 16},
		{"negative clamps", -3, 16},
		{"small", 5, 16},
		{"just under the load factor", 11, 32},
		{"hundred", 100, 256},
		{"thousand", 1000, 2048},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := capacityForEntries(tt.n)
			require.Equal(t, tt.want, got)

			// Holding n entries in the returned capacity must not trip
			// the load factor.
			require.LessOrEqual(t, (tt.n+1)*loadFactorDen, got*loadFactorNum)
		})
	}
}
