package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solobuddy/hub/internal/models"
)

func TestBuildActionCardAddIdea(t *testing.T) {
	idea := &models.BacklogItem{ID: 1, Title: "Live orb for UI"}

	t.Run("existing idea wins over new title", func(t *testing.T) {
		card := BuildActionCard(CategoryAddToBacklog, Entities{Idea: idea, NewIdeaTitle: "something else"}, nil, 90)
		require.NotNil(t, card)
		assert.Equal(t, CardAddIdea, card.Type)
		assert.Equal(t, "Live orb for UI", card.Title)
		assert.Equal(t, idea, card.ExistingIdea)
		assert.Equal(t, models.PriorityMedium, card.SuggestedPriority)
		assert.Equal(t, models.FormatThread, card.SuggestedFormat)
	})

	t.Run("new title", func(t *testing.T) {
		card := BuildActionCard(CategoryAddToBacklog, Entities{NewIdeaTitle: "dark mode"}, nil, 75)
		require.NotNil(t, card)
		assert.Equal(t, "dark mode", card.Title)
		assert.Nil(t, card.ExistingIdea)
	})

	t.Run("placeholder title", func(t *testing.T) {
		card := BuildActionCard(CategoryAddToBacklog, Entities{}, nil, 75)
		require.NotNil(t, card)
		assert.Equal(t, "Новая идея", card.Title)
	})

	t.Run("extracted priority and format kept", func(t *testing.T) {
		card := BuildActionCard(CategoryAddToBacklog,
			Entities{Priority: models.PriorityHigh, Format: models.FormatGif}, nil, 75)
		require.NotNil(t, card)
		assert.Equal(t, models.PriorityHigh, card.SuggestedPriority)
		assert.Equal(t, models.FormatGif, card.SuggestedFormat)
	})

	t.Run("duplicate warning flag", func(t *testing.T) {
		links := []ContextualLink{
			{Type: LinkProjectSuggestion, Project: "hub"},
			{Type: LinkDuplicateWarning, ExistingIdea: idea},
		}
		card := BuildActionCard(CategoryAddToBacklog, Entities{}, links, 75)
		require.NotNil(t, card)
		assert.True(t, card.HasDuplicateWarning)
		assert.Equal(t, links, card.Links)

		card = BuildActionCard(CategoryAddToBacklog, Entities{}, links[:1], 75)
		require.NotNil(t, card)
		assert.False(t, card.HasDuplicateWarning)
	})
}

func TestBuildActionCardFindIdea(t *testing.T) {
	idea := &models.BacklogItem{ID: 2, Title: "Voice onboarding flow"}
	card := BuildActionCard(CategoryFindIdea, Entities{Idea: idea, NewIdeaTitle: "voice"}, nil, 81)
	require.NotNil(t, card)
	assert.Equal(t, CardFindIdea, card.Type)
	assert.Equal(t, idea, card.FoundIdea)
	assert.Equal(t, "voice", card.SearchQuery)

	card = BuildActionCard(CategoryFindIdea, Entities{}, nil, 81)
	require.NotNil(t, card)
	assert.Nil(t, card.FoundIdea)
}

func TestBuildActionCardShowActivity(t *testing.T) {
	project := &models.Project{Name: "SPHERE"}
	card := BuildActionCard(CategoryShowActivity, Entities{Project: project}, nil, 91)
	require.NotNil(t, card)
	assert.Equal(t, CardActivity, card.Type)
	assert.Equal(t, project, card.Project)
}

func TestBuildActionCardChangePriority(t *testing.T) {
	idea := &models.BacklogItem{ID: 1, Title: "Live orb for UI"}

	card := BuildActionCard(CategoryChangePriority, Entities{Idea: idea}, nil, 90)
	require.NotNil(t, card)
	assert.Equal(t, CardChangePriority, card.Type)
	assert.Equal(t, idea, card.Idea)
	assert.Equal(t, models.PriorityHigh, card.NewPriority, "change_priority defaults to high")

	card = BuildActionCard(CategoryChangePriority, Entities{Priority: models.PriorityLow}, nil, 90)
	require.NotNil(t, card)
	assert.Equal(t, models.PriorityLow, card.NewPriority)
}

func TestBuildActionCardGenerateContent(t *testing.T) {
	entities := Entities{
		ContentPrompt: "хочу контент про AI",
		Project:       &models.Project{Name: "SoloBuddy"},
	}
	card := BuildActionCard(CategoryGenerateContent, entities, nil, 90)
	require.NotNil(t, card)
	assert.Equal(t, CardContentGenerator, card.Type)
	assert.Equal(t, "хочу контент про AI", card.Prompt)
	assert.Equal(t, models.FormatThread, card.Template, "template defaults to thread")
	assert.Equal(t, "SoloBuddy", card.ProjectName)

	card = BuildActionCard(CategoryGenerateContent, Entities{ContentPrompt: "напиши пост", Format: models.FormatPost}, nil, 90)
	require.NotNil(t, card)
	assert.Equal(t, models.FormatPost, card.Template)
	assert.Empty(t, card.ProjectName)
}

func TestBuildActionCardNoBranch(t *testing.T) {
	// link_to_project is in the taxonomy but deliberately has no card.
	assert.Nil(t, BuildActionCard(CategoryLinkToProject, Entities{}, nil, 90))
	assert.Nil(t, BuildActionCard(CategoryUnknown, Entities{}, nil, 0))
	assert.Nil(t, BuildActionCard(Category("made_up"), Entities{}, nil, 90))
}

func TestConfidenceTiers(t *testing.T) {
	tests := []struct {
		confidence int
		level      string
		badge      string
	}{
		{100, "high", "🟢"},
		{85, "high", "🟢"},
		{84, "medium", "🟡"},
		{70, "medium", "🟡"},
		{69, "low", "🔴"},
		{1, "low", "🔴"},
	}
	for _, tc := range tests {
		card := BuildActionCard(CategoryFindIdea, Entities{}, nil, tc.confidence)
		require.NotNil(t, card)
		assert.Equal(t, tc.confidence, card.Confidence)
		assert.Equal(t, tc.level, card.ConfidenceLevel, "confidence=%d", tc.confidence)
		assert.Equal(t, tc.badge, card.ConfidenceBadge, "confidence=%d", tc.confidence)
	}
}
