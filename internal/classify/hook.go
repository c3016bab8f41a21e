package classify

import (
	"strings"
	"unicode"
)

// Hook style labels.
const (
	HookPOV       = "POV Storytelling"
	HookQuestion  = "Question Hook"
	HookNumbered  = "Numbered List"
	HookCTA       = "Call to Action"
	HookShock     = "Shock Hook"
	HookUrgent    = "Urgent/Secret"
	HookStatement = "Direct Statement"
)

// HookStyleOf labels how a post opens. Starts-with checks look only at the
// first five words of the title; contains checks see the full text.
func HookStyleOf(title, description string) string {
	opening := firstWords(strings.ToLower(title), 5)
	text := combinedText(title, description)

	switch {
	case strings.HasPrefix(opening, "pov"):
		return HookPOV
	case strings.Contains(text, "?") || strings.HasPrefix(opening, "how ") || strings.HasPrefix(opening, "why "):
		return HookQuestion
	case startsWithDigit(opening):
		return HookNumbered
	case strings.HasPrefix(opening, "watch") || strings.HasPrefix(opening, "wait") || strings.HasPrefix(opening, "see"):
		return HookCTA
	case strings.Contains(text, "!!") || strings.Contains(text, "you won't believe") || strings.Contains(text, "shocking"):
		return HookShock
	case strings.Contains(text, "must") || strings.Contains(text, "need to") || strings.Contains(text, "secret"):
		return HookUrgent
	default:
		return HookStatement
	}
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}
