package service

import "strings"

// DefaultTheme is what callers substitute when no theme bucket matches.
const DefaultTheme = "meaningful insights"

type themeRule struct {
	theme    string
	triggers []string
}

var themeRules = []themeRule{
	{"accuracy", []string{"accurate", "correct", "right", "precise", "exact"}},
	{"insight", []string{"insightful", "deep", "meaningful", "profound", "revealing"}},
	{"guidance", []string{"helpful", "guidance", "direction", "advice", "clarity"}},
	{"resonance", []string{"resonated", "connected", "felt", "understood", "related"}},
	{"timing", []string{"timing", "when", "future", "soon", "time"}},
	{"practical", []string{"practical", "actionable", "useful", "applicable", "doable"}},
}

// ExtractThemes maps accumulated feedback texts to the fixed theme labels.
// All texts are concatenated and lower-cased; a theme is included when any
// of its trigger words appears as a substring. The result can be empty.
func ExtractThemes(feedbackTexts []string) []string {
	joined := strings.ToLower(strings.Join(feedbackTexts, " "))
	var themes []string
	for _, rule := range themeRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(joined, trigger) {
				themes = append(themes, rule.theme)
				break
			}
		}
	}
	return themes
}
