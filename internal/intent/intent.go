// Package intent turns free-text chat messages into typed action
// specifications. A fast pattern matcher handles clear-cut phrasing; an
// optional remote classifier is consulted when local confidence lands in the
// gray zone. The whole pipeline is stateless and safe for concurrent use.
package intent

import "github.com/solobuddy/hub/internal/models"

// Category is the closed set of user goals the pipeline recognizes.
type Category string

const (
	CategoryAddToBacklog    Category = "add_to_backlog"
	CategoryFindIdea        Category = "find_idea"
	CategoryShowActivity    Category = "show_activity"
	CategoryLinkToProject   Category = "link_to_project"
	CategoryChangePriority  Category = "change_priority"
	CategoryGenerateContent Category = "generate_content"
	CategoryUnknown         Category = "unknown"
)

// Categories lists every valid category, unknown included.
var Categories = []Category{
	CategoryAddToBacklog,
	CategoryFindIdea,
	CategoryShowActivity,
	CategoryLinkToProject,
	CategoryChangePriority,
	CategoryGenerateContent,
	CategoryUnknown,
}

// ParseCategory validates an external string against the closed enumeration.
// Remote classifiers are never trusted to return a member.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return CategoryUnknown, false
}

// Classification is an intent guess with a 0-100 confidence score.
type Classification struct {
	Type       Category `json:"type"`
	Confidence int      `json:"confidence"`
}

// Entities is the bag of fields extracted from a message. All fields are
// optional except ContentPrompt, which always carries the raw message once
// extraction has run.
type Entities struct {
	Idea          *models.BacklogItem `json:"idea,omitempty"`
	Project       *models.Project     `json:"project,omitempty"`
	Priority      models.Priority     `json:"priority,omitempty"`
	Format        models.Format       `json:"format,omitempty"`
	NewIdeaTitle  string              `json:"newIdeaTitle,omitempty"`
	ContentPrompt string              `json:"contentPrompt,omitempty"`
}

type LinkType string

const (
	LinkProjectSuggestion LinkType = "project_suggestion"
	LinkDuplicateWarning  LinkType = "duplicate_warning"
)

// ContextualLink is a secondary suggestion attached to a resolved intent:
// either a project the idea probably belongs to, or a warning that a similar
// idea already sits in the backlog.
type ContextualLink struct {
	Type LinkType `json:"type"`

	// project_suggestion fields
	Project    string `json:"project,omitempty"`
	DaysSilent int    `json:"daysSilent,omitempty"`
	Score      int    `json:"score,omitempty"`
	NameMatch  bool   `json:"nameMatch,omitempty"`

	// duplicate_warning fields
	ExistingIdea *models.BacklogItem `json:"existingIdea,omitempty"`

	Suggestion string `json:"suggestion"`
}

type CardType string

const (
	CardAddIdea          CardType = "AddIdeaCard"
	CardFindIdea         CardType = "FindIdeaCard"
	CardActivity         CardType = "ActivityCard"
	CardChangePriority   CardType = "ChangePriorityCard"
	CardContentGenerator CardType = "ContentGeneratorCard"
)

// ActionCard is the typed command the pipeline hands to the consuming layer.
// Type selects the variant; only that variant's fields are populated.
type ActionCard struct {
	Type CardType `json:"type"`

	// AddIdeaCard
	Title               string              `json:"title,omitempty"`
	ExistingIdea        *models.BacklogItem `json:"existingIdea,omitempty"`
	SuggestedPriority   models.Priority     `json:"suggestedPriority,omitempty"`
	SuggestedFormat     models.Format       `json:"suggestedFormat,omitempty"`
	Links               []ContextualLink    `json:"links,omitempty"`
	HasDuplicateWarning bool                `json:"hasDuplicateWarning,omitempty"`

	// FindIdeaCard
	FoundIdea   *models.BacklogItem `json:"foundIdea,omitempty"`
	SearchQuery string              `json:"searchQuery,omitempty"`

	// ActivityCard
	Project *models.Project `json:"project,omitempty"`

	// ChangePriorityCard
	Idea        *models.BacklogItem `json:"idea,omitempty"`
	NewPriority models.Priority     `json:"newPriority,omitempty"`

	// ContentGeneratorCard
	Prompt      string        `json:"prompt,omitempty"`
	Template    models.Format `json:"template,omitempty"`
	ProjectName string        `json:"projectName,omitempty"`

	Confidence      int    `json:"confidence"`
	ConfidenceLevel string `json:"confidenceLevel"`
	ConfidenceBadge string `json:"confidenceBadge"`
}

// Source records which classifier produced the final result.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
	SourceNone   Source = "none"
)

// Result is the pipeline's output for one message.
type Result struct {
	IntentType Category         `json:"intentType"`
	Entities   Entities         `json:"entities"`
	Links      []ContextualLink `json:"links"`
	Action     *ActionCard      `json:"actionSpec"`
	Confidence int              `json:"confidence"`
	Source     Source           `json:"source"`
}
