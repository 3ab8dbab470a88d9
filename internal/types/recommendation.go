package types

import "github.com/google/uuid"

// RecommendationView is the presentation record returned to API clients.
type RecommendationView struct {
	ID          uuid.UUID `json:"id"`
	RecipeID    uuid.UUID `json:"recipe_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Score       float64   `json:"score"`
	Reason      string    `json:"reason"`
}

// RecommendationsResponse wraps the list endpoint payload
type RecommendationsResponse struct {
	Recommendations []RecommendationView `json:"recommendations"`
}

// GenerateResponse is returned by the explicit regeneration endpoint
type GenerateResponse struct {
	Generated       int                  `json:"generated"`
	Recommendations []RecommendationView `json:"recommendations"`
}
