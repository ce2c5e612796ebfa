package matching

import "strings"

// IngredientMatcher reports whether ingredientName is covered by any of the
// pantry names. Pantry names arrive trimmed and lowercased.
type IngredientMatcher func(pantryNames []string, ingredientName string) bool

// SubstringMatcher accepts containment in either direction, so "chicken"
// covers "chicken breast" and "roma tomatoes" covers "tomato".
func SubstringMatcher(pantryNames []string, ingredientName string) bool {
	ing := normalize(ingredientName)
	if ing == "" {
		return false
	}
	for _, pan := range pantryNames {
		if pan == "" {
			continue
		}
		if strings.Contains(pan, ing) || strings.Contains(ing, pan) {
			return true
		}
	}
	return false
}

// ExactMatcher only accepts equal names after normalization.
func ExactMatcher(pantryNames []string, ingredientName string) bool {
	ing := normalize(ingredientName)
	for _, pan := range pantryNames {
		if pan == ing && ing != "" {
			return true
		}
	}
	return false
}
