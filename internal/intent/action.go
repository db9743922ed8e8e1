package intent

import "github.com/solobuddy/hub/internal/models"

// Display tiers are distinct from the arbitration thresholds in resolver.go.
func confidenceTier(confidence int) (level, badge string) {
	switch {
	case confidence >= 85:
		return "high", "🟢"
	case confidence >= 70:
		return "medium", "🟡"
	default:
		return "low", "🔴"
	}
}

// BuildActionCard assembles the typed action card for a resolved intent.
// Unknown and link_to_project produce nil: link_to_project is recognized by
// the matcher but has no card yet, so it falls back to plain chat. Callers
// treat nil as "nothing actionable", not as a failure.
func BuildActionCard(category Category, entities Entities, links []ContextualLink, confidence int) *ActionCard {
	level, badge := confidenceTier(confidence)

	switch category {
	case CategoryAddToBacklog:
		title := "Новая идея"
		if entities.Idea != nil {
			title = entities.Idea.Title
		} else if entities.NewIdeaTitle != "" {
			title = entities.NewIdeaTitle
		}
		priority := entities.Priority
		if priority == "" {
			priority = models.PriorityMedium
		}
		format := entities.Format
		if format == "" {
			format = models.FormatThread
		}
		hasDuplicate := false
		for _, link := range links {
			if link.Type == LinkDuplicateWarning {
				hasDuplicate = true
				break
			}
		}
		return &ActionCard{
			Type:                CardAddIdea,
			Title:               title,
			ExistingIdea:        entities.Idea,
			SuggestedPriority:   priority,
			SuggestedFormat:     format,
			Links:               links,
			HasDuplicateWarning: hasDuplicate,
			Confidence:          confidence,
			ConfidenceLevel:     level,
			ConfidenceBadge:     badge,
		}

	case CategoryFindIdea:
		return &ActionCard{
			Type:            CardFindIdea,
			FoundIdea:       entities.Idea,
			SearchQuery:     entities.NewIdeaTitle,
			Confidence:      confidence,
			ConfidenceLevel: level,
			ConfidenceBadge: badge,
		}

	case CategoryShowActivity:
		return &ActionCard{
			Type:            CardActivity,
			Project:         entities.Project,
			Confidence:      confidence,
			ConfidenceLevel: level,
			ConfidenceBadge: badge,
		}

	case CategoryChangePriority:
		priority := entities.Priority
		if priority == "" {
			priority = models.PriorityHigh
		}
		return &ActionCard{
			Type:            CardChangePriority,
			Idea:            entities.Idea,
			NewPriority:     priority,
			Confidence:      confidence,
			ConfidenceLevel: level,
			ConfidenceBadge: badge,
		}

	case CategoryGenerateContent:
		template := entities.Format
		if template == "" {
			template = models.FormatThread
		}
		projectName := ""
		if entities.Project != nil {
			projectName = entities.Project.Name
		}
		return &ActionCard{
			Type:            CardContentGenerator,
			Prompt:          entities.ContentPrompt,
			Template:        template,
			ProjectName:     projectName,
			Confidence:      confidence,
			ConfidenceLevel: level,
			ConfidenceBadge: badge,
		}

	default:
		return nil
	}
}
