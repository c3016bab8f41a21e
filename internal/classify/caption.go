package classify

import "unicode/utf8"

// CaptionStructureOf builds a descriptive caption label from the combined
// text length, the emoji density, and the hashtag count, e.g.
// "Short & punchy, heavy emoji, hashtag-heavy".
func CaptionStructureOf(title, description string, hashtags []string) string {
	text := title
	if description != "" {
		text += " " + description
	}

	var length string
	switch chars := utf8.RuneCountInString(text); {
	case chars < 50:
		length = "Short & punchy"
	case chars < 100:
		length = "Medium length"
	default:
		length = "Long-form"
	}

	var emoji string
	switch n := countEmoji(text); {
	case n > 5:
		emoji = "heavy emoji"
	case n > 2:
		emoji = "moderate emoji"
	case n > 0:
		emoji = "light emoji"
	default:
		emoji = "no emoji"
	}

	var tags string
	switch n := len(uniqueTags(hashtags, text)); {
	case n > 5:
		tags = "hashtag-heavy"
	case n > 0:
		tags = "some hashtags"
	default:
		tags = "no hashtags"
	}

	return length + ", " + emoji + ", " + tags
}

// countEmoji counts runes inside the common emoji blocks. The corpus has
// no emoji-property package, so the blocks are enumerated directly.
func countEmoji(s string) int {
	count := 0
	for _, r := range s {
		if isEmoji(r) {
			count++
		}
	}
	return count
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F5FF: // symbols & pictographs
		return true
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport & map
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // supplemental symbols
		return true
	case r >= 0x1FA70 && r <= 0x1FAFF: // extended-A
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	}
	return false
}
