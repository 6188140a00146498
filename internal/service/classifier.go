package service

import "strings"

// Question categories. The order of categoryRules below is the resolution
// order: a question matching two categories resolves to the earlier one.
const (
	CategoryLoveRelationship = "love_relationship"
	CategoryCareerFinance    = "career_finance"
	CategoryHealthWellness   = "health_wellness"
	CategorySpiritualGrowth  = "spiritual_growth"
	CategoryFuturePrediction = "future_prediction"
	CategoryDecisionAdvice   = "decision_advice"
	CategoryGeneral          = "general"
)

type categoryRule struct {
	category string
	triggers []string
}

var categoryRules = []categoryRule{
	{CategoryLoveRelationship, []string{"love", "relationship", "partner", "romance", "dating", "marriage"}},
	{CategoryCareerFinance, []string{"career", "job", "work", "profession", "business", "money", "finance"}},
	{CategoryHealthWellness, []string{"health", "wellness", "body", "healing", "medical"}},
	{CategorySpiritualGrowth, []string{"spiritual", "soul", "purpose", "meaning", "growth", "meditation"}},
	{CategoryFuturePrediction, []string{"future", "will", "prediction", "outcome", "happen"}},
	{CategoryDecisionAdvice, []string{"decision", "choice", "should", "what to do", "advice"}},
}

// ClassifyQuestion maps a free-text question to one of the fixed categories.
// Matching is case-insensitive substring containment, first rule wins, and
// questions matching nothing fall back to the general category.
func ClassifyQuestion(question string) string {
	lowered := strings.ToLower(question)
	for _, rule := range categoryRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(lowered, trigger) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}
