package intent

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/solobuddy/hub/internal/models"
)

var (
	// "про X" pulls the keyword after the preposition; the looser variant
	// catches "та идея ... X" / "штука ... X" phrasing.
	ideaKeywordPattern = regexp.MustCompile(`про\s+(\w+)`)
	ideaLoosePattern   = regexp.MustCompile(`(?:идея|штука|та)\s+\S*\s*(\w+)`)

	priorityPatterns = []struct {
		priority models.Priority
		re       *regexp.Regexp
	}{
		{models.PriorityHigh, regexp.MustCompile(`high|🔥|срочн|важн|критичн`)},
		{models.PriorityMedium, regexp.MustCompile(`medium|⚡|обычн|normal`)},
		{models.PriorityLow, regexp.MustCompile(`low|💭|потом|когда-нибудь`)},
	}

	formatPatterns = []struct {
		format models.Format
		re     *regexp.Regexp
	}{
		{models.FormatThread, regexp.MustCompile(`thread|тред`)},
		{models.FormatGif, regexp.MustCompile(`gif|гифк`)},
		{models.FormatPost, regexp.MustCompile(`post|пост`)},
		{models.FormatVideo, regexp.MustCompile(`video|видео`)},
	}

	// "добавь идею X" / "add idea X" / "запиши X" capture patterns, with the
	// typo-prone variants ahead of the stricter ones. Quotes around the title
	// are optional and stripped by the character class.
	newTitlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)добав(?:ь|ить).*идею?\s+[«"']?([^»"']+)[»"']?$`),
		regexp.MustCompile(`(?i)add.*idea\s+[«"']?([^»"']+)[»"']?$`),
		regexp.MustCompile(`(?i)запиш(?:и|ь)\s+[«"']?([^»"']+)[»"']?$`),
		regexp.MustCompile(`(?i)сохран(?:и|ить)\s+[«"']?([^»"']+)[»"']?$`),
	}
)

// ExtractEntities pulls the referenced idea, project, priority, format, and
// new-idea title out of a message using the supplied context. Extractions are
// independent of each other, except that a new-idea title is only kept when
// no existing idea was resolved. ContentPrompt always carries the raw
// message; the whole message is the generation prompt.
func ExtractEntities(message string, data models.Context) Entities {
	entities := Entities{ContentPrompt: message}

	if idea := findBacklogIdea(message, data.BacklogItems); idea != nil {
		entities.Idea = idea
	}
	if project := findProject(message, data.Projects); project != nil {
		entities.Project = project
	}
	entities.Priority = extractPriority(message)
	entities.Format = extractFormat(message)
	if entities.Idea == nil {
		entities.NewIdeaTitle = extractNewIdeaTitle(message)
	}

	return entities
}

// findBacklogIdea fuzzy-matches a backlog item: "та штука про orb" should
// land on "Live orb for UI".
func findBacklogIdea(message string, items []models.BacklogItem) *models.BacklogItem {
	if len(items) == 0 {
		return nil
	}
	msg := strings.ToLower(message)

	keyword := ""
	if m := ideaKeywordPattern.FindStringSubmatch(msg); m != nil {
		keyword = m[1]
	} else if m := ideaLoosePattern.FindStringSubmatch(msg); m != nil {
		keyword = m[1]
	}

	if keyword != "" {
		for i := range items {
			if strings.Contains(strings.ToLower(items[i].Title), keyword) {
				return &items[i]
			}
		}
	}

	// Fallback: any significant title word appearing verbatim in the message.
	for i := range items {
		for _, word := range strings.Fields(strings.ToLower(items[i].Title)) {
			if utf8.RuneCountInString(word) > 3 && strings.Contains(msg, word) {
				return &items[i]
			}
		}
	}

	return nil
}

// findProject returns the first project any of whose aliases appears in the
// message. First match wins by project order, not by longest alias.
func findProject(message string, projects []models.Project) *models.Project {
	if len(projects) == 0 {
		return nil
	}
	msg := strings.ToLower(message)

	for i := range projects {
		for _, alias := range projects[i].Aliases() {
			if alias != "" && strings.Contains(msg, alias) {
				return &projects[i]
			}
		}
	}
	return nil
}

func extractPriority(message string) models.Priority {
	msg := strings.ToLower(message)
	for _, group := range priorityPatterns {
		if group.re.MatchString(msg) {
			return group.priority
		}
	}
	return ""
}

func extractFormat(message string) models.Format {
	msg := strings.ToLower(message)
	for _, group := range formatPatterns {
		if group.re.MatchString(msg) {
			return group.format
		}
	}
	return ""
}

func extractNewIdeaTitle(message string) string {
	for _, pattern := range newTitlePatterns {
		if m := pattern.FindStringSubmatch(message); m != nil && m[1] != "" {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
