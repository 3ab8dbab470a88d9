package service

import (
	"strings"

	"github.com/pageza/fridgechef/backend/internal/model"
)

const (
	// MatchIncrement is added once per (recipe ingredient, fridge ingredient) matching pair.
	MatchIncrement = 10.0
	// ExcludedScore marks a recipe dropped by an allergy. It is never persisted or shown.
	ExcludedScore = -100.0

	maxReasonIngredients = 2
	fallbackReason       = "건강 정보를 고려한 추천입니다."
)

// Evaluation is the outcome of scoring one recipe for one user.
type Evaluation struct {
	Score    float64
	Reason   string
	Excluded bool
}

// Qualifies reports whether the recipe may be persisted as a recommendation.
func (e Evaluation) Qualifies() bool {
	return !e.Excluded && e.Score > 0
}

// ScoreAndExplain scores recipe against the user's fridge ingredient names and allergies.
//
// Matching is raw, case-sensitive substring containment in either direction. Every
// matching (recipe ingredient, fridge ingredient) pair adds MatchIncrement, so a single
// fridge item can count several times. An allergy contained in any recipe ingredient
// excludes the recipe outright.
func ScoreAndExplain(recipe *model.Recipe, userIngredients, allergies []string) Evaluation {
	if recipe == nil || len(recipe.Ingredients) == 0 {
		return Evaluation{Reason: fallbackReason}
	}

	for _, allergy := range allergies {
		for _, ingredient := range recipe.Ingredients {
			if strings.Contains(ingredient, allergy) {
				return Evaluation{Score: ExcludedScore, Excluded: true}
			}
		}
	}

	var score float64
	for _, ingredient := range recipe.Ingredients {
		for _, owned := range userIngredients {
			if ingredientsMatch(ingredient, owned) {
				score += MatchIncrement
			}
		}
	}

	return Evaluation{Score: score, Reason: explain(recipe.Ingredients, userIngredients)}
}

func ingredientsMatch(recipeIngredient, owned string) bool {
	return strings.Contains(recipeIngredient, owned) || strings.Contains(owned, recipeIngredient)
}

// explain names up to two distinct fridge ingredients, taking the first match for each
// recipe ingredient in recipe order.
func explain(recipeIngredients, userIngredients []string) string {
	matched := make([]string, 0, maxReasonIngredients)
	seen := make(map[string]struct{}, maxReasonIngredients)

	for _, ingredient := range recipeIngredients {
		if len(matched) == maxReasonIngredients {
			break
		}
		for _, owned := range userIngredients {
			if !ingredientsMatch(ingredient, owned) {
				continue
			}
			if _, dup := seen[owned]; !dup {
				seen[owned] = struct{}{}
				matched = append(matched, owned)
			}
			break
		}
	}

	if len(matched) == 0 {
		return fallbackReason
	}
	return "냉장고 속 " + strings.Join(matched, ", ") + "을(를) 활용한 레시피예요!"
}
