package mealdb

import (
	"fmt"
	"regexp"
	"strings"
)

const maxIngredientSlots = 20

type (
	Ingredient struct {
		Name    string `json:"name"`
		Measure string `json:"measure,omitempty"`
	}

	// Recipe is a TheMealDB meal normalized to the shape the catalog stores.
	Recipe struct {
		ExternalID   string       `json:"external_id"`
		Title        string       `json:"title"`
		Category     string       `json:"category,omitempty"`
		Area         string       `json:"area,omitempty"`
		Instructions []string     `json:"instructions"`
		Thumbnail    string       `json:"thumbnail,omitempty"`
		Tags         []string     `json:"tags"`
		Youtube      string       `json:"youtube,omitempty"`
		Ingredients  []Ingredient `json:"ingredients"`
	}

	rawMeal map[string]any
)

var stepSplitter = regexp.MustCompile(`\r?\n|\.\s+`)

// Normalize maps a raw meal object. Summary records from filter.php only
// carry id, name and thumbnail, so every other field may come back empty.
func Normalize(meal rawMeal) Recipe {
	return Recipe{
		ExternalID:   meal.str("idMeal"),
		Title:        meal.str("strMeal"),
		Category:     meal.str("strCategory"),
		Area:         meal.str("strArea"),
		Instructions: splitInstructions(meal.str("strInstructions")),
		Thumbnail:    meal.str("strMealThumb"),
		Tags:         splitTags(meal.str("strTags")),
		Youtube:      meal.str("strYoutube"),
		Ingredients:  extractIngredients(meal),
	}
}

func extractIngredients(meal rawMeal) []Ingredient {
	out := make([]Ingredient, 0, maxIngredientSlots)
	for i := 1; i <= maxIngredientSlots; i++ {
		name := strings.TrimSpace(meal.str(fmt.Sprintf("strIngredient%d", i)))
		if name == "" {
			continue
		}
		out = append(out, Ingredient{
			Name:    name,
			Measure: strings.TrimSpace(meal.str(fmt.Sprintf("strMeasure%d", i))),
		})
	}
	return out
}

func splitInstructions(text string) []string {
	steps := make([]string, 0)
	if strings.TrimSpace(text) == "" {
		return steps
	}
	for _, step := range stepSplitter.Split(text, -1) {
		if step = strings.TrimSpace(step); step != "" {
			steps = append(steps, step)
		}
	}
	return steps
}

func splitTags(text string) []string {
	tags := make([]string, 0)
	for _, tag := range strings.Split(text, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (m rawMeal) str(key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
