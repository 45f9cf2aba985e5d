package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfile(t *testing.T) {
	tests := []struct {
		name        string
		preset      Preset
		wantWorkers int
	}{
		{"cautious", PresetCautious, 1},
		{"normal", PresetNormal, 2},
		{"fast", PresetFast, 3},
		{"aggressive", PresetAggressive, 4},
		{"unknown falls back to normal", Preset("warp"), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prof := Profile(tt.preset)
			assert.Equal(t, tt.wantWorkers, prof.Workers)
			assert.NotEmpty(t, prof.Description)
			assert.LessOrEqual(t, prof.ScrollDelay.Min, prof.ScrollDelay.Max)
		})
	}
}

func TestDelayRange_Jitter(t *testing.T) {
	r := DelayRange{Min: 100 * time.Millisecond, Max: 300 * time.Millisecond}
	for i := 0; i < 50; i++ {
		d := r.Jitter()
		assert.GreaterOrEqual(t, d, r.Min)
		assert.Less(t, d, r.Max)
	}

	fixed := DelayRange{Min: time.Second, Max: time.Second}
	assert.Equal(t, time.Second, fixed.Jitter())
}

func TestRandomUserAgent(t *testing.T) {
	assert.Contains(t, UserAgents(false), RandomUserAgent(false))
	assert.Contains(t, UserAgents(true), RandomUserAgent(true))
}

func TestEstimateDuration(t *testing.T) {
	// 10 URLs x 50 reviews x 2s per review, 2 workers at 85% efficiency:
	// 1000s of work divided by a 1.7x effective speedup.
	got := EstimateDuration(10, 50, 2, 2*time.Second)
	assert.InDelta(t, 1000/1.7, got.Seconds(), 1)

	assert.Equal(t, time.Duration(0), EstimateDuration(0, 50, 2, time.Second))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45s", FormatDuration(45*time.Second))
	assert.Equal(t, "2m 5s", FormatDuration(125*time.Second))
	assert.Equal(t, "1h 0m 30s", FormatDuration(3630*time.Second))
}
