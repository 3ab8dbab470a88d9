package service

import (
	"strings"
	"unicode"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/pageza/fridgechef/backend/internal/model"
)

// GenerateEmbedding returns a simple deterministic embedding for the given text.
// It counts runes, Hangul syllables and Latin letters so Korean titles produce non-zero vectors.
func GenerateEmbedding(text string) pgvector.Vector {
	var runes, hangul, latin float32
	for _, r := range strings.ToLower(text) {
		if unicode.IsSpace(r) {
			continue
		}
		runes++
		switch {
		case unicode.Is(unicode.Hangul, r):
			hangul++
		case r >= 'a' && r <= 'z':
			latin++
		}
	}
	return pgvector.NewVector([]float32{runes, hangul, latin})
}

// RecipeEmbedding embeds a recipe from its title and ingredient list.
func RecipeEmbedding(recipe *model.Recipe) *pgvector.Vector {
	text := recipe.Title + " " + strings.Join(recipe.Ingredients, " ")
	v := GenerateEmbedding(text)
	return &v
}
