package classify

import "testing"

func TestHookStyleOf(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		expected    string
	}{
		{
			name:     "pov opening",
			title:    "POV: you are the new intern",
			expected: HookPOV,
		},
		{
			name:     "question mark",
			title:    "did you know this trick?",
			expected: HookQuestion,
		},
		{
			name:     "how prefix",
			title:    "how we built a cabin in 30 days",
			expected: HookQuestion,
		},
		{
			name:     "why prefix",
			title:    "why nobody talks about this",
			expected: HookQuestion,
		},
		{
			name:        "question mark in description",
			title:       "the answer nobody expected",
			description: "can you guess it?",
			expected:    HookQuestion,
		},
		{
			name:     "numbered list",
			title:    "7 things I wish I knew sooner",
			expected: HookNumbered,
		},
		{
			name:     "watch call to action",
			title:    "watch this before you buy",
			expected: HookCTA,
		},
		{
			name:     "wait call to action",
			title:    "wait for the ending",
			expected: HookCTA,
		},
		{
			name:     "double exclamation shock",
			title:    "this actually happened!!",
			expected: HookShock,
		},
		{
			name:     "you won't believe",
			title:    "you won't believe what she found",
			expected: HookShock,
		},
		{
			name:     "secret urgency",
			title:    "the secret to perfect pasta",
			expected: HookUrgent,
		},
		{
			name:     "need to urgency",
			title:    "everything you need to know about visas",
			expected: HookUrgent,
		},
		{
			name:     "plain statement",
			title:    "our trip to lisbon",
			expected: HookStatement,
		},
		{
			name:     "empty title",
			title:    "",
			expected: HookStatement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HookStyleOf(tt.title, tt.description)
			if result != tt.expected {
				t.Errorf("HookStyleOf(%q) = %q, want %q", tt.title, result, tt.expected)
			}
		})
	}
}

func TestFirstWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"shorter than limit", "one two", 5, "one two"},
		{"exactly at limit", "a b c d e", 5, "a b c d e"},
		{"truncated", "a b c d e f g", 5, "a b c d e"},
		{"empty", "", 5, ""},
		{"extra whitespace collapsed", "  a   b  ", 5, "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := firstWords(tt.input, tt.n)
			if result != tt.expected {
				t.Errorf("firstWords(%q, %d) = %q, want %q", tt.input, tt.n, result, tt.expected)
			}
		})
	}
}
