package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectIntentType(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		wantType Category
	}{
		{"add idea ru", "добавь идею про orb", CategoryAddToBacklog},
		{"add idea ru infinitive", "надо добавить идею live orb", CategoryAddToBacklog},
		{"add idea en", "add idea about live orb", CategoryAddToBacklog},
		{"fuzzy shtuka", "та штука про orb, помнишь?", CategoryAddToBacklog},
		{"find idea", "найди идею про onboarding", CategoryFindIdea},
		{"show backlog", "покажи backlog", CategoryFindIdea},
		{"activity ru", "что происходит с проектом?", CategoryShowActivity},
		{"activity en", "status", CategoryShowActivity},
		{"link to project", "это для проекта hub", CategoryLinkToProject},
		{"priority urgent", "это urgent!", CategoryChangePriority},
		{"priority ru", "сделай high", CategoryChangePriority},
		{"generate ru", "сгенерим пост про запуск", CategoryGenerateContent},
		{"generate loose", "хочу контент про AI", CategoryGenerateContent},
		{"greeting", "привет, как дела?", CategoryUnknown},
		{"noise", "ну такое себе", CategoryUnknown},
		{"empty", "", CategoryUnknown},
		{"whitespace", "   ", CategoryUnknown},
		{"emoji only", "🔥🔥🔥", CategoryUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectIntentType(tc.message)
			assert.Equal(t, tc.wantType, got.Type)
			if tc.wantType == CategoryUnknown {
				assert.Equal(t, 0, got.Confidence, "unknown always carries confidence 0")
			} else {
				assert.GreaterOrEqual(t, got.Confidence, 70, "a pattern hit starts at the 70 base")
			}
			assert.GreaterOrEqual(t, got.Confidence, 0)
			assert.LessOrEqual(t, got.Confidence, 100)
		})
	}
}

func TestDetectIntentTypeIsDeterministic(t *testing.T) {
	messages := []string{
		"добавь идею про orb",
		"хочу контент про AI",
		"привет, как дела?",
		"что происходит с проектом?",
	}
	for _, msg := range messages {
		first := DetectIntentType(msg)
		for i := 0; i < 50; i++ {
			assert.Equal(t, first, DetectIntentType(msg), "message %q", msg)
		}
	}
}

func TestDetectIntentTypeConfidenceScoring(t *testing.T) {
	// "добавь идею" is 11 of 19 runes: 70 + 20*11/19 rounds to 82.
	got := DetectIntentType("добавь идею про orb")
	require.Equal(t, CategoryAddToBacklog, got.Type)
	assert.Equal(t, 82, got.Confidence)

	// "контент" is 7 of 19 runes, no domain keyword: 70 + 20*7/19 rounds to 77,
	// squarely inside the gray zone.
	got = DetectIntentType("хочу контент про AI")
	require.Equal(t, CategoryGenerateContent, got.Type)
	assert.Equal(t, 77, got.Confidence)

	// Full-message match plus the "проект" keyword bonus.
	got = DetectIntentType("что происходит с проектом?")
	require.Equal(t, CategoryShowActivity, got.Type)
	assert.Equal(t, 91, got.Confidence)

	// Exact full match caps the length bonus at 20.
	got = DetectIntentType("сделай high")
	require.Equal(t, CategoryChangePriority, got.Type)
	assert.Equal(t, 90, got.Confidence)
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		parsed, ok := ParseCategory(string(c))
		assert.True(t, ok)
		assert.Equal(t, c, parsed)
	}

	parsed, ok := ParseCategory("delete_everything")
	assert.False(t, ok)
	assert.Equal(t, CategoryUnknown, parsed)

	parsed, ok = ParseCategory("")
	assert.False(t, ok)
	assert.Equal(t, CategoryUnknown, parsed)
}
