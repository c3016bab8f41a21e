// Package score computes the 0-100 viral score and its age decay. All
// functions are pure; the refresh pipeline is the only writer of stored
// scores.
package score

import (
	"math"
	"time"

	"github.com/clipsmith/trendscout/internal/models"
)

// platformMultipliers weights raw engagement by how hard each platform's
// counters are to move. Unknown platforms fall back to 1.0.
var platformMultipliers = map[string]float64{
	models.PlatformTikTok:    1.0,
	models.PlatformInstagram: 1.2,
	models.PlatformYouTube:   1.5,
	models.PlatformTwitter:   0.8,
	models.PlatformFacebook:  0.7,
}

// PlatformMultiplier returns the engagement weight for a platform.
func PlatformMultiplier(platform string) float64 {
	if m, ok := platformMultipliers[platform]; ok {
		return m
	}
	return 1.0
}

// ViralScore maps engagement counters to a 0-100 score. Only the upper
// bound is a hard clamp; negative counters are not expected but are
// clamped to zero rather than crashing.
func ViralScore(views, likes, shares, comments int64, platform string) int {
	raw := float64(views)/10000 +
		float64(likes)/100*2 +
		float64(shares)*5 +
		float64(comments)*3

	s := int(math.Round(raw * PlatformMultiplier(platform)))
	if s > 100 {
		return 100
	}
	if s < 0 {
		return 0
	}
	return s
}

// DecayParams are the tunables of the age-decay curve. Defaults mirror
// config.ScoringConfig: 3-day grace window, 2% per day, 50% floor.
type DecayParams struct {
	GraceDays int
	PerDay    float64
	Floor     float64
}

// DefaultDecay returns the reference decay curve.
func DefaultDecay() DecayParams {
	return DecayParams{GraceDays: 3, PerDay: 0.02, Floor: 0.5}
}

// ApplyDecay fades a score by trend age. Inside the grace window the score
// is untouched; past it the score loses PerDay per day down to the floor,
// so an old but strong trend fades without vanishing.
func ApplyDecay(s int, createdAt, now time.Time, p DecayParams) int {
	ageDays := now.Sub(createdAt).Hours() / 24
	if ageDays <= float64(p.GraceDays) {
		return s
	}

	decayDays := ageDays - float64(p.GraceDays)
	factor := 1 - decayDays*p.PerDay
	if factor < p.Floor {
		factor = p.Floor
	}
	return int(math.Round(float64(s) * factor))
}

// EngagementRate returns likes/views as a percentage, or false when views
// is zero and the rate is undefined.
func EngagementRate(views, likes int64) (float64, bool) {
	if views <= 0 {
		return 0, false
	}
	return float64(likes) / float64(views) * 100, true
}
