package intent

import (
	"math"
	"regexp"
	"strings"
)

// patternFamily binds one intent category to its ordered pattern list.
// Families are tried in order and the first matching pattern in the first
// matching family wins; there is no cross-category scoring. Reordering
// changes classification outcomes, so the order is part of the contract.
type patternFamily struct {
	category Category
	patterns []*regexp.Regexp
}

var intentPatterns = []patternFamily{
	{CategoryAddToBacklog, []*regexp.Regexp{
		regexp.MustCompile(`добав(ь|ить|й).*идею?`),
		regexp.MustCompile(`запис(ать|ь).*в.*backlog`),
		regexp.MustCompile(`новая.*идея`),
		// fuzzy: "та штука про orb"
		regexp.MustCompile(`та.*штук(а|у).*про`),
		regexp.MustCompile(`хочу.*запомнить`),
		regexp.MustCompile(`add.*idea`),
		regexp.MustCompile(`save.*backlog`),
	}},
	{CategoryFindIdea, []*regexp.Regexp{
		regexp.MustCompile(`где.*идея.*про`),
		regexp.MustCompile(`найди.*идею?`),
		regexp.MustCompile(`та.*идея.*про`),
		regexp.MustCompile(`что.*там.*про`),
		regexp.MustCompile(`покажи.*backlog`),
	}},
	{CategoryShowActivity, []*regexp.Regexp{
		regexp.MustCompile(`что.*происходит`),
		regexp.MustCompile(`как.*дела.*с`),
		regexp.MustCompile(`последн(ее|ие).*commit`),
		regexp.MustCompile(`где.*активность`),
		regexp.MustCompile(`status`),
		regexp.MustCompile(`update`),
	}},
	{CategoryLinkToProject, []*regexp.Regexp{
		regexp.MustCompile(`связ(ать|ь).*с.*проект`),
		regexp.MustCompile(`это.*для.*проект`),
		regexp.MustCompile(`добавь.*к.*проект`),
	}},
	{CategoryChangePriority, []*regexp.Regexp{
		regexp.MustCompile(`сделай.*high`),
		regexp.MustCompile(`повысь.*приоритет`),
		regexp.MustCompile(`urgent`),
		regexp.MustCompile(`срочн`),
	}},
	{CategoryGenerateContent, []*regexp.Regexp{
		regexp.MustCompile(`сгенери(м|руй)?.*(пост|контент|тред|thread)`),
		regexp.MustCompile(`напиш(и|ем).*(пост|тред|thread|статью)`),
		regexp.MustCompile(`generate.*(content|post|thread)`),
		regexp.MustCompile(`write.*(post|thread)`),
		regexp.MustCompile(`draft.*(post|thread)`),
		regexp.MustCompile(`контент`),
	}},
}

// domainKeywords earn a flat confidence bonus when present anywhere in the
// message, whichever pattern matched.
var domainKeywords = regexp.MustCompile(`backlog|идея|priority|проект`)

// DetectIntentType maps a raw message to its best-guess category and a 0-100
// confidence score. Unmatched, empty, or otherwise unusable input yields
// unknown with confidence 0 rather than an error.
func DetectIntentType(message string) Classification {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return Classification{Type: CategoryUnknown, Confidence: 0}
	}

	for _, family := range intentPatterns {
		for _, pattern := range family.patterns {
			if match := pattern.FindString(msg); match != "" {
				return Classification{
					Type:       family.category,
					Confidence: matchConfidence(match, msg),
				}
			}
		}
	}

	return Classification{Type: CategoryUnknown, Confidence: 0}
}

// matchConfidence scores a pattern hit: 70 base, up to +20 for match length
// relative to the message, +10 when a domain keyword is present. Lengths are
// rune counts so Cyrillic messages score the same as Latin ones.
func matchConfidence(match, message string) int {
	confidence := 70.0
	confidence += 20 * float64(len([]rune(match))) / float64(len([]rune(message)))
	if domainKeywords.MatchString(message) {
		confidence += 10
	}
	if confidence > 100 {
		confidence = 100
	}
	if confidence < 0 {
		confidence = 0
	}
	return int(math.Round(confidence))
}
