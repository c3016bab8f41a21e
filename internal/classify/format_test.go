package classify

import "testing"

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name     string
		input    Input
		expected string
	}{
		{
			name:     "pov prefix",
			input:    Input{Title: "POV: when you forget the password"},
			expected: FormatPOV,
		},
		{
			name:     "pov wins over later rules",
			input:    Input{Title: "POV: my glow up challenge"},
			expected: FormatPOV,
		},
		{
			name:     "before and after",
			input:    Input{Title: "My room before and after cleaning"},
			expected: FormatTransformation,
		},
		{
			name:     "glow up",
			input:    Input{Title: "6 month glow up"},
			expected: FormatTransformation,
		},
		{
			name:     "beforeandafter hashtag",
			input:    Input{Title: "new apartment", Hashtags: []string{"beforeandafter"}},
			expected: FormatTransformation,
		},
		{
			name:     "how to",
			input:    Input{Title: "How to make sourdough at home"},
			expected: FormatTutorial,
		},
		{
			name:     "numbered list rule",
			input:    Input{Title: "5 tips to grow your business"},
			expected: FormatTutorial,
		},
		{
			name:     "numbered hacks in description",
			input:    Input{Title: "kitchen stuff", Description: "3 hacks you should know"},
			expected: FormatTutorial,
		},
		{
			name:     "when meme",
			input:    Input{Title: "when the wifi drops mid call"},
			expected: FormatMeme,
		},
		{
			name:     "meme hashtag",
			input:    Input{Title: "monday morning", Hashtags: []string{"#meme"}},
			expected: FormatMeme,
		},
		{
			name:     "storytime",
			input:    Input{Title: "storytime: my worst flight ever"},
			expected: FormatStorytime,
		},
		{
			name:     "time i phrase",
			input:    Input{Title: "the time i locked myself out"},
			expected: FormatStorytime,
		},
		{
			name:     "anyone else",
			input:    Input{Title: "anyone else talk to their plants"},
			expected: FormatRelatable,
		},
		{
			name:     "relatable hashtag",
			input:    Input{Title: "morning routine chaos", Hashtags: []string{"relatable"}},
			expected: FormatRelatable,
		},
		{
			name:     "aesthetic",
			input:    Input{Title: "autumn morning aesthetic"},
			expected: FormatAesthetic,
		},
		{
			name:     "vibe",
			input:    Input{Title: "late night drive vibe"},
			expected: FormatAesthetic,
		},
		{
			name:     "challenge",
			input:    Input{Title: "trying the 75 hard challenge"},
			expected: FormatChallenge,
		},
		{
			name:     "challenge hashtag",
			input:    Input{Title: "day one", Hashtags: []string{"#challenge"}},
			expected: FormatChallenge,
		},
		{
			name:     "fallback other",
			input:    Input{Title: "my lunch today"},
			expected: FormatOther,
		},
		{
			name:     "empty input",
			input:    Input{},
			expected: FormatOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatOf(tt.input)
			if result != tt.expected {
				t.Errorf("FormatOf(%q) = %q, want %q", tt.input.Title, result, tt.expected)
			}
		})
	}
}

func TestFormatRuleOrder(t *testing.T) {
	// The table is evaluated top to bottom; a post matching several rules
	// must land on the earliest one.
	input := Input{Title: "POV: how to survive a transformation challenge meme"}
	if got := FormatOf(input); got != FormatPOV {
		t.Errorf("FormatOf() = %q, want %q (first rule wins)", got, FormatPOV)
	}
}

func TestClassifyDeterminism(t *testing.T) {
	input := Input{
		Title:       "POV: when you forget the password",
		Description: "relatable tech moments 😂😂😂",
		Hashtags:    []string{"#tech", "#relatable"},
		Platform:    "tiktok",
		Duration:    18,
	}

	first := Classify(input)
	second := Classify(input)
	if first != second {
		t.Errorf("Classify() not deterministic: %+v vs %+v", first, second)
	}
}
