package matching

import "time"

type (
	PantryItem struct {
		ID   string
		Name string
		// Zero value means no expiry recorded.
		Expiry time.Time
	}

	Ingredient struct {
		Name     string `json:"name"`
		Amount   string `json:"amount,omitempty"`
		Required bool   `json:"required"`
	}

	Recipe struct {
		ID          string
		Title       string
		Name        string
		Description string
		Ingredients []Ingredient
		Flavors     []string
		PrepTime    int
		CookTime    int
		Servings    int
		ImageURL    string
	}

	// FlavorPreferenceSet holds flavor category ids. A nil Likes or Dislikes
	// means the preference store had nothing to report.
	FlavorPreferenceSet struct {
		Likes    []string
		Dislikes []string
	}

	// MatchedRecipe is the output of CalculateMatches.
	MatchedRecipe struct {
		Recipe
		MatchPercentage         int
		RequiredMatchPercentage int
		AvailableIngredients    []Ingredient
		MissingIngredients      []Ingredient
		CanMake                 bool
	}

	// PrioritizedRecipe is the output of PrioritizeByExpiration.
	PrioritizedRecipe struct {
		MatchedRecipe
		Prioritized       bool
		UsesExpiringItems bool
		ExpiringItemsUsed int
		PriorityScore     int
	}

	// WeightedRecipe is the output of WeightByPreferences. Weighted is false
	// when preferences were absent and the stage passed its input through.
	WeightedRecipe struct {
		PrioritizedRecipe
		Weighted        bool
		PreferenceScore int
		FinalScore      int
	}
)

// DisplayTitle prefers Title and falls back to Name.
func (r Recipe) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// BaseScore is the score the preference stage builds on.
func (p PrioritizedRecipe) BaseScore() int {
	if p.Prioritized && p.PriorityScore != 0 {
		return p.PriorityScore
	}
	return p.MatchPercentage
}

// FromMatches lifts match results so they can be weighted without running
// the expiration stage.
func FromMatches(matched []MatchedRecipe) []PrioritizedRecipe {
	out := make([]PrioritizedRecipe, 0, len(matched))
	for _, m := range matched {
		out = append(out, PrioritizedRecipe{MatchedRecipe: m})
	}
	return out
}
