// Package config holds run configuration: speed presets, user-agent
// rotation and environment-backed credentials.
package config

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// MaxRecommendedWorkers is the practical ceiling for concurrent scraping
// sessions; beyond it the detection risk of the target rises sharply.
const MaxRecommendedWorkers = 4

// Preset names a speed/stealth tuning profile.
type Preset string

const (
	PresetCautious   Preset = "cautious"
	PresetNormal     Preset = "normal"
	PresetFast       Preset = "fast"
	PresetAggressive Preset = "aggressive"
)

// DelayRange bounds a randomized delay.
type DelayRange struct {
	Min time.Duration
	Max time.Duration
}

// Jitter returns a random duration within the range.
func (d DelayRange) Jitter() time.Duration {
	if d.Max <= d.Min {
		return d.Min
	}
	return d.Min + time.Duration(rand.Int63n(int64(d.Max-d.Min)))
}

// SpeedProfile carries the delay tuning for one preset.
type SpeedProfile struct {
	ScrollDelay DelayRange
	ClickDelay  DelayRange
	LoadDelay   DelayRange
	Workers     int
	Description string
}

var profiles = map[Preset]SpeedProfile{
	PresetCautious: {
		ScrollDelay: DelayRange{1500 * time.Millisecond, 3 * time.Second},
		ClickDelay:  DelayRange{1500 * time.Millisecond, 3 * time.Second},
		LoadDelay:   DelayRange{5 * time.Second, 8 * time.Second},
		Workers:     1,
		Description: "Maximum stealth, minimum speed",
	},
	PresetNormal: {
		ScrollDelay: DelayRange{800 * time.Millisecond, 2 * time.Second},
		ClickDelay:  DelayRange{800 * time.Millisecond, 2 * time.Second},
		LoadDelay:   DelayRange{3 * time.Second, 6 * time.Second},
		Workers:     2,
		Description: "Balanced speed and stealth",
	},
	PresetFast: {
		ScrollDelay: DelayRange{300 * time.Millisecond, 1 * time.Second},
		ClickDelay:  DelayRange{500 * time.Millisecond, 1500 * time.Millisecond},
		LoadDelay:   DelayRange{2 * time.Second, 4 * time.Second},
		Workers:     3,
		Description: "Higher speed, higher detection risk",
	},
	PresetAggressive: {
		ScrollDelay: DelayRange{100 * time.Millisecond, 500 * time.Millisecond},
		ClickDelay:  DelayRange{200 * time.Millisecond, 800 * time.Millisecond},
		LoadDelay:   DelayRange{1 * time.Second, 2 * time.Second},
		Workers:     4,
		Description: "Maximum speed, very high detection risk",
	},
}

// Profile returns the speed profile for a preset, falling back to the
// normal profile for unknown names.
func Profile(p Preset) SpeedProfile {
	if prof, ok := profiles[p]; ok {
		return prof
	}
	return profiles[PresetNormal]
}

// Config holds the environment-backed part of the configuration; the
// rest comes from CLI flags.
type Config struct {
	APIToken string
}

// Load reads configuration from the environment. A .env file is loaded
// when present; it is fine for it to be missing.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("APIFY_API_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("APIFY_API_TOKEN environment variable not set")
	}

	return &Config{APIToken: token}, nil
}

var desktopUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
}

var mobileUserAgents = []string{
	"Mozilla/5.0 (Linux; Android 13) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1",
}

// RandomUserAgent picks a realistic user agent.
func RandomUserAgent(mobile bool) string {
	agents := desktopUserAgents
	if mobile {
		agents = mobileUserAgents
	}
	return agents[rand.Intn(len(agents))]
}

// UserAgents returns the rotation pool.
func UserAgents(mobile bool) []string {
	if mobile {
		return mobileUserAgents
	}
	return desktopUserAgents
}

// EstimateDuration gives a rough estimate of total scraping time,
// assuming ~85% parallel efficiency.
func EstimateDuration(numURLs, reviewsPerURL, workers int, perReview time.Duration) time.Duration {
	if numURLs == 0 || workers <= 0 {
		return 0
	}
	totalReviews := numURLs * reviewsPerURL
	base := time.Duration(totalReviews) * perReview
	speedup := float64(min(workers, numURLs)) * 0.85
	if speedup < 1 {
		speedup = 1
	}
	return time.Duration(float64(base) / speedup)
}

// FormatDuration renders a duration as "1h 2m 3s" style text.
func FormatDuration(d time.Duration) string {
	secs := int(d.Seconds())
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	secs = secs % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
