package classify

import (
	"regexp"
	"strings"
)

// hashtagPattern matches #tags in Latin, Arabic, and CJK scripts. \p{L}
// covers all letter scripts; digits and underscore round out the usual
// hashtag alphabet.
var hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// Hashtag is one extracted tag with its frequency-based relevance.
type Hashtag struct {
	Tag       string
	Relevance float64
}

// ExtractHashtags merges the scraper-provided hashtag list with tags found
// in the text, deduplicates, and caps the result at max. Relevance counts
// how often a tag appears: once for the provided list plus once per text
// occurrence.
func ExtractHashtags(title, description string, provided []string, max int) []Hashtag {
	text := title
	if description != "" {
		text += " " + description
	}

	order := make([]string, 0, len(provided)+4)
	counts := make(map[string]float64)

	add := func(tag string, weight float64) {
		tag = normalizeTag(tag)
		if tag == "" {
			return
		}
		if _, seen := counts[tag]; !seen {
			order = append(order, tag)
		}
		counts[tag] += weight
	}

	for _, tag := range provided {
		add(tag, 1)
	}
	for _, match := range hashtagPattern.FindAllString(text, -1) {
		add(match, 1)
	}

	if max > 0 && len(order) > max {
		order = order[:max]
	}

	result := make([]Hashtag, 0, len(order))
	for _, tag := range order {
		result = append(result, Hashtag{Tag: tag, Relevance: counts[tag]})
	}
	return result
}

// uniqueTags returns the deduplicated tag set used for caption density.
func uniqueTags(provided []string, text string) []string {
	extracted := ExtractHashtags(text, "", provided, 0)
	tags := make([]string, 0, len(extracted))
	for _, h := range extracted {
		tags = append(tags, h.Tag)
	}
	return tags
}

func normalizeTag(tag string) string {
	tag = strings.TrimSpace(strings.ToLower(tag))
	tag = strings.TrimPrefix(tag, "#")
	return tag
}
