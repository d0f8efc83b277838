package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantClasses int
		wantErr     bool
	}{
		{"default", DefaultConfig, 12, false},
		{"32K", Config32K, 13, false},
		{"derived", Config{ArenaSize: 16384, WordSize: 4}, 12, false},
		{"derived 8-byte words", Config{ArenaSize: 4096, WordSize: 8}, 9, false},
		{"three top pages", Config{ArenaSize: 24576, WordSize: 4, Classes: 12}, 12, false},
		{"single page", Config{ArenaSize: 16384, WordSize: 4, Classes: 13}, 13, false},
		{"word too small", Config{ArenaSize: 16384, WordSize: 2, Classes: 12}, 0, true},
		{"word not pow2", Config{ArenaSize: 16384, WordSize: 12, Classes: 4}, 0, true},
		{"zero arena", Config{ArenaSize: 0, WordSize: 4, Classes: 1}, 0, true},
		{"arena not multiple of word", Config{ArenaSize: 1026, WordSize: 4, Classes: 1}, 0, true},
		{"top page larger than arena", Config{ArenaSize: 16384, WordSize: 4, Classes: 14}, 0, true},
		{"arena not multiple of top page", Config{ArenaSize: 12288, WordSize: 4, Classes: 12}, 0, true},
		{"cannot derive", Config{ArenaSize: 24576, WordSize: 4}, 0, true},
		{"negative classes", Config{ArenaSize: 16384, WordSize: 4, Classes: -1}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.normalize()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBadConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantClasses, got.Classes)
		})
	}
}

func TestConfig_PageSizes(t *testing.T) {
	sizes := DefaultConfig.pageSizes()
	require.Equal(t, []int32{4, 8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096, 8192}, sizes)
}

func TestNew_RejectsBadConfig(t *testing.T) {
	h, err := New(&Config{ArenaSize: 1000, WordSize: 4, Classes: 12})
	require.ErrorIs(t, err, ErrBadConfig)
	require.Nil(t, h)
}
