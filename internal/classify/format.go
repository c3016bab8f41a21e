package classify

import (
	"regexp"
	"strings"
)

// Format type labels.
const (
	FormatPOV            = "pov"
	FormatTransformation = "transformation"
	FormatTutorial       = "tutorial"
	FormatMeme           = "meme"
	FormatStorytime      = "storytime"
	FormatRelatable      = "relatable"
	FormatAesthetic      = "aesthetic"
	FormatChallenge      = "challenge"
	FormatOther          = "other"
)

var listPattern = regexp.MustCompile(`\d+\s+(ways?|tips?|steps?|hacks?)`)

// formatRule is one entry of the ordered classification table. The
// predicate sees the lower-cased title+description and the lower-cased
// hashtag string.
type formatRule struct {
	format string
	match  func(text, tags string) bool
}

// formatRules is evaluated top to bottom; the first match wins. Order
// matters: a "POV: glow up challenge" title is a pov, not a challenge.
var formatRules = []formatRule{
	{FormatPOV, func(text, tags string) bool {
		return strings.Contains(text, "pov") || strings.HasPrefix(text, "pov:")
	}},
	{FormatTransformation, func(text, tags string) bool {
		if strings.Contains(text, "before") && strings.Contains(text, "after") {
			return true
		}
		return strings.Contains(text, "transformation") ||
			strings.Contains(text, "glow up") ||
			strings.Contains(tags, "#beforeandafter")
	}},
	{FormatTutorial, func(text, tags string) bool {
		return strings.Contains(text, "how to") ||
			strings.Contains(text, "tutorial") ||
			strings.Contains(text, "step by step") ||
			listPattern.MatchString(text)
	}},
	{FormatMeme, func(text, tags string) bool {
		return strings.Contains(text, "when ") ||
			strings.Contains(text, "meme") ||
			strings.Contains(text, "literally me") ||
			strings.Contains(tags, "#meme")
	}},
	{FormatStorytime, func(text, tags string) bool {
		return strings.Contains(text, "story time") ||
			strings.Contains(text, "storytime") ||
			strings.Contains(text, "time i ") ||
			strings.Contains(text, "remember when")
	}},
	{FormatRelatable, func(text, tags string) bool {
		return strings.Contains(text, "relatable") ||
			strings.Contains(text, "anyone else") ||
			strings.Contains(text, "is it just me") ||
			strings.Contains(tags, "#relatable")
	}},
	{FormatAesthetic, func(text, tags string) bool {
		return strings.Contains(text, "aesthetic") ||
			strings.Contains(text, "montage") ||
			strings.Contains(text, "vibe") ||
			strings.Contains(tags, "#aesthetic")
	}},
	{FormatChallenge, func(text, tags string) bool {
		return strings.Contains(text, "challenge") ||
			strings.Contains(tags, "#challenge")
	}},
}

// FormatOf classifies a post into one of the format types.
func FormatOf(in Input) string {
	text := combinedText(in.Title, in.Description)
	tags := hashtagText(in.Hashtags)

	for _, rule := range formatRules {
		if rule.match(text, tags) {
			return rule.format
		}
	}
	return FormatOther
}
