package zdict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name string
		want Mode
	}{
		{"mutable", Mutable},
		{"immutable", Immutable},
		{"readonly", Readonly},
		{"insert", Insert},
		{"arena", Arena},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMode(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name, got.String())
		})
	}

	_, err := ParseMode("frozen")
	require.Error(t, err)
}

func TestMode_Capabilities(t *testing.T) {
	tests := []struct {
		mode     Mode
		insert   bool
		update   bool
		delete   bool
		hashable bool
	}{
		{Mutable, true, true, true, false},
		{Immutable, false, false, false, true},
		{Readonly, false, false, false, false},
		{Insert, true, false, false, false},
		{Arena, true, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.insert, tt.mode.canInsert())
			assert.Equal(t, tt.update, tt.mode.canUpdate())
			assert.Equal(t, tt.delete, tt.mode.canDelete())
			assert.Equal(t, tt.hashable, tt.mode.hashable())
		})
	}
}

func TestSupportedModes(t *testing.T) {
	require.Len(t, SupportedModes, 5)

	for name := range SupportedModes {
		m, err := ParseMode(name)
		require.NoError(t, err)
		require.True(t, m.valid())
	}
}
