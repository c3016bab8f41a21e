package classify

import (
	"strings"

	"github.com/clipsmith/trendscout/internal/models"
)

// Pacing labels.
const (
	PacingTikTok   = "Fast-paced (2-3s cuts)"
	PacingModerate = "Moderate pace (5-7s segments)"
	PacingVeryFast = "Very fast (1-2s cuts)"
	PacingFast     = "Fast (2-4s cuts)"
	PacingMedium   = "Medium pace (4-6s cuts)"
)

// PacingOf labels the expected cut cadence. TikTok content is always cut
// fast regardless of format; tutorials and storytimes breathe slower.
// Duration 0 means unknown and falls through to medium.
func PacingOf(platform, format string, duration int64) string {
	if platform == models.PlatformTikTok {
		return PacingTikTok
	}
	if format == FormatTutorial || format == FormatStorytime {
		return PacingModerate
	}
	switch {
	case duration > 0 && duration < 20:
		return PacingVeryFast
	case duration > 0 && duration < 35:
		return PacingFast
	default:
		return PacingMedium
	}
}

// Intro type labels.
const (
	IntroPOV      = "POV Scenario Setup"
	IntroPromise  = "Promise/Outcome Hook"
	IntroBefore   = "Before State Reveal"
	IntroTextOver = "Text Overlay Hook"
	IntroVisual   = "Visual Hook"
)

// IntroTypeOf maps the format (and, failing that, the title) to an intro type.
func IntroTypeOf(format, title string) string {
	switch format {
	case FormatPOV:
		return IntroPOV
	case FormatTutorial:
		return IntroPromise
	case FormatTransformation:
		return IntroBefore
	}
	lower := strings.ToLower(title)
	if strings.Contains(lower, "text") || strings.Contains(lower, "caption") {
		return IntroTextOver
	}
	return IntroVisual
}

// Editing style labels.
const (
	EditingJumpCuts = "Jump cuts & transitions"
	EditingSmooth   = "Smooth transitions"
	EditingStepwise = "Step-by-step progression"
	EditingStandard = "Standard cuts"
)

// EditingStyleOf labels the dominant editing technique.
func EditingStyleOf(platform, format string) string {
	if platform == models.PlatformTikTok || format == FormatMeme {
		return EditingJumpCuts
	}
	switch format {
	case FormatAesthetic:
		return EditingSmooth
	case FormatTutorial:
		return EditingStepwise
	}
	return EditingStandard
}
