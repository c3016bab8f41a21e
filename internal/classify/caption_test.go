package classify

import "testing"

func TestCaptionStructureOf(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		hashtags    []string
		expected    string
	}{
		{
			name:     "short no emoji no hashtags",
			title:    "morning run",
			expected: "Short & punchy, no emoji, no hashtags",
		},
		{
			name:     "short heavy emoji hashtag heavy",
			title:    "gym day 💪💪💪🔥🔥🔥",
			hashtags: []string{"gym", "fit", "gains", "lift", "sweat", "goals"},
			expected: "Short & punchy, heavy emoji, hashtag-heavy",
		},
		{
			name:        "medium length moderate emoji some hashtags",
			title:       "what a week this turned out to be",
			description: "so much happened 😅😅😅",
			hashtags:    []string{"life"},
			expected:    "Medium length, moderate emoji, some hashtags",
		},
		{
			name:        "long form light emoji",
			title:       "a full breakdown of everything we packed",
			description: "three weeks across four countries with one carry-on each, here is the complete list 🎒",
			expected:    "Long-form, light emoji, no hashtags",
		},
		{
			name:     "hashtags extracted from text",
			title:    "sunset walk #goldenhour #nofilter",
			expected: "Short & punchy, no emoji, some hashtags",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CaptionStructureOf(tt.title, tt.description, tt.hashtags)
			if result != tt.expected {
				t.Errorf("CaptionStructureOf(%q) = %q, want %q", tt.title, result, tt.expected)
			}
		})
	}
}

func TestCountEmoji(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"no emoji", "plain text only", 0},
		{"single emoticon", "hello 😀", 1},
		{"mixed blocks", "🚀 launch ☀️ day 🧪", 3},
		{"repeated", "😂😂😂😂😂😂", 6},
		{"cjk text is not emoji", "今日はいい天気", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := countEmoji(tt.input)
			if result != tt.expected {
				t.Errorf("countEmoji(%q) = %d, want %d", tt.input, result, tt.expected)
			}
		})
	}
}
