// Package classify turns raw post text and metadata into the structural
// labels stored on a trend: format type, hook style, pacing, intro type,
// editing style, and caption structure. Everything here is pure and
// deterministic; classification never touches storage.
package classify

import "strings"

// Input is the subset of a raw payload the classifier inspects.
type Input struct {
	Title       string
	Description string
	Hashtags    []string
	Platform    string
	Duration    int64 // seconds, 0 when unknown
}

// Result holds every label derived for one post.
type Result struct {
	FormatType       string
	HookStyle        string
	IntroType        string
	PacingPattern    string
	EditingStyle     string
	CaptionStructure string
}

// Classify runs all classification rules over one post.
func Classify(in Input) Result {
	format := FormatOf(in)
	return Result{
		FormatType:       format,
		HookStyle:        HookStyleOf(in.Title, in.Description),
		IntroType:        IntroTypeOf(format, in.Title),
		PacingPattern:    PacingOf(in.Platform, format, in.Duration),
		EditingStyle:     EditingStyleOf(in.Platform, format),
		CaptionStructure: CaptionStructureOf(in.Title, in.Description, in.Hashtags),
	}
}

// combinedText returns the lower-cased title+description used by the
// content-matching rules.
func combinedText(title, description string) string {
	text := title
	if description != "" {
		text += " " + description
	}
	return strings.ToLower(text)
}

// hashtagText returns the lower-cased hashtag list as one string, with
// every tag carrying its # prefix so rules can match "#meme" exactly.
func hashtagText(hashtags []string) string {
	if len(hashtags) == 0 {
		return ""
	}
	parts := make([]string, 0, len(hashtags))
	for _, h := range hashtags {
		h = strings.TrimSpace(strings.ToLower(h))
		if h == "" {
			continue
		}
		if !strings.HasPrefix(h, "#") {
			h = "#" + h
		}
		parts = append(parts, h)
	}
	return strings.Join(parts, " ")
}
