package intent

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/solobuddy/hub/internal/models"
)

// Tuned on real usage, not derived. Treat as knobs.
const (
	nameMatchBonus     = 20  // added to the temporal score on a title/name hit
	suggestionCutoff   = 50  // minimum temporal score to suggest without a name hit
	maxSuggestions     = 3   // top-N project suggestions kept
	duplicateThreshold = 0.5 // shared significant-word ratio that flags a duplicate
)

// temporalScore converts days of git silence into a relevance score. Fixed
// step function: today 100, yesterday 70, 2-3 days 50, 4-7 days 30, else 10.
func temporalScore(daysSilent int) int {
	switch {
	case daysSilent <= 0:
		return 100
	case daysSilent == 1:
		return 70
	case daysSilent <= 3:
		return 50
	case daysSilent <= 7:
		return 30
	default:
		return 10
	}
}

func silenceLabel(daysSilent int) string {
	switch {
	case daysSilent <= 0:
		return "трогал сегодня"
	case daysSilent == 1:
		return "трогал вчера"
	case daysSilent <= 3:
		return fmt.Sprintf("%d дня назад", daysSilent)
	case daysSilent <= 7:
		return "на этой неделе"
	default:
		return "давно не трогал"
	}
}

// FindContextualLinks computes the secondary signals for a resolved intent:
// project suggestions ranked by recency and name overlap, followed by at
// most one duplicate-idea warning. Output order is part of the contract.
func FindContextualLinks(entities Entities, data models.Context) []ContextualLink {
	links := make([]ContextualLink, 0, maxSuggestions+1)

	title := ""
	if entities.Idea != nil {
		title = strings.ToLower(entities.Idea.Title)
	} else if entities.NewIdeaTitle != "" {
		title = strings.ToLower(entities.NewIdeaTitle)
	}

	suggestions := make([]ContextualLink, 0, len(data.GitActivity))
	for _, stat := range data.GitActivity {
		score := temporalScore(stat.DaysSilent)
		nameMatch := titleMatchesProject(title, stat.ProjectName)
		if !nameMatch && score < suggestionCutoff {
			continue
		}
		if nameMatch {
			score += nameMatchBonus
		}
		suggestions = append(suggestions, ContextualLink{
			Type:       LinkProjectSuggestion,
			Project:    stat.ProjectName,
			DaysSilent: stat.DaysSilent,
			Score:      score,
			NameMatch:  nameMatch,
			Suggestion: fmt.Sprintf("Связать с %s? (%s)", stat.ProjectName, silenceLabel(stat.DaysSilent)),
		})
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	links = append(links, suggestions...)

	if entities.NewIdeaTitle != "" {
		if similar := findSimilarIdea(entities.NewIdeaTitle, data.BacklogItems); similar != nil {
			links = append(links, ContextualLink{
				Type:         LinkDuplicateWarning,
				ExistingIdea: similar,
				Suggestion:   fmt.Sprintf("💡 Похожая идея уже есть: %q", similar.Title),
			})
		}
	}

	return links
}

// titleMatchesProject reports whether the resolved title mentions the project
// or the project name contains the title's first token.
func titleMatchesProject(title, projectName string) bool {
	if title == "" || projectName == "" {
		return false
	}
	name := strings.ToLower(projectName)
	if strings.Contains(title, name) {
		return true
	}
	fields := strings.Fields(title)
	return len(fields) > 0 && strings.Contains(name, fields[0])
}

// findSimilarIdea flags the first backlog item sharing at least half of the
// new title's significant words. First qualifying match, not best match.
func findSimilarIdea(newTitle string, items []models.BacklogItem) *models.BacklogItem {
	newWords := significantWords(newTitle)
	if len(newWords) == 0 {
		return nil
	}

	for i := range items {
		existing := significantWords(items[i].Title)
		common := 0
		for word := range newWords {
			if _, ok := existing[word]; ok {
				common++
			}
		}
		if common > 0 && float64(common)/float64(len(newWords)) >= duplicateThreshold {
			return &items[i]
		}
	}
	return nil
}

func significantWords(title string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(title)) {
		if utf8.RuneCountInString(word) > 3 {
			words[word] = struct{}{}
		}
	}
	return words
}
