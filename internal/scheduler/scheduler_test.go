package scheduler

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mfp-stats/internal/config"
)

func TestParseAt(t *testing.T) {
	tests := []struct {
		in           string
		hour, minute uint
		wantErr      bool
	}{
		{in: "04:00", hour: 4},
		{in: " 23:59 ", hour: 23, minute: 59},
		{in: "4:5", hour: 4, minute: 5},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "-1:00", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			h, m, err := parseAt(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, h)
			assert.Equal(t, tt.minute, m)
		})
	}
}

func TestScheduler_DisabledIsNoop(t *testing.T) {
	cfg := &config.Config{Refresh: config.Refresh{Enabled: false, At: "garbage"}}
	s, err := NewScheduler(nil, nil, cfg, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, s.Start())
	assert.Empty(t, s.s.Jobs())
	require.NoError(t, s.Stop())
}

func TestScheduler_InvalidTime(t *testing.T) {
	cfg := &config.Config{Refresh: config.Refresh{Enabled: true, At: "25:00"}}
	s, err := NewScheduler(nil, nil, cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Error(t, s.Start())
}
