package matching

import (
	"math"
	"sort"
	"strings"
	"time"
)

const (
	// ExpiringWindowDays bounds (inclusive, from today) which pantry items
	// boost a recipe. Kept apart from expiry.WarningWindowDays.
	ExpiringWindowDays = 3

	ExpiringItemBoost     = 10
	LikedFlavorWeight     = 10
	DislikedFlavorPenalty = 15
)

type (
	Engine interface {
		CalculateMatches(recipes []Recipe, pantryItems []PantryItem) []MatchedRecipe
		PrioritizeByExpiration(matched []MatchedRecipe, pantryItems []PantryItem) []PrioritizedRecipe
		WeightByPreferences(recipes []PrioritizedRecipe, preferences *FlavorPreferenceSet) []WeightedRecipe
		Rank(recipes []Recipe, pantryItems []PantryItem, preferences *FlavorPreferenceSet) []WeightedRecipe
	}

	Option func(*engine)

	engine struct {
		matcher IngredientMatcher
		now     func() time.Time
	}
)

func WithMatcher(m IngredientMatcher) Option {
	return func(e *engine) {
		if m != nil {
			e.matcher = m
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(opts ...Option) Engine {
	e := &engine{
		matcher: SubstringMatcher,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *engine) CalculateMatches(recipes []Recipe, pantryItems []PantryItem) []MatchedRecipe {
	pantryNames := make([]string, 0, len(pantryItems))
	for _, item := range pantryItems {
		pantryNames = append(pantryNames, normalize(item.Name))
	}

	matched := make([]MatchedRecipe, 0, len(recipes))
	for _, recipe := range recipes {
		if recipe.DisplayTitle() == "" || len(recipe.Ingredients) == 0 {
			continue
		}
		matched = append(matched, e.match(recipe, pantryNames))
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CanMake != matched[j].CanMake {
			return matched[i].CanMake
		}
		return matched[i].MatchPercentage > matched[j].MatchPercentage
	})
	return matched
}

func (e *engine) match(recipe Recipe, pantryNames []string) MatchedRecipe {
	available := make([]Ingredient, 0, len(recipe.Ingredients))
	missing := make([]Ingredient, 0)
	requiredCount, requiredAvailable := 0, 0

	for _, ing := range recipe.Ingredients {
		found := e.matcher(pantryNames, ing.Name)
		if ing.Required {
			requiredCount++
			if found {
				requiredAvailable++
			}
		}
		if found {
			available = append(available, ing)
		} else {
			missing = append(missing, ing)
		}
	}

	requiredPct := 100
	if requiredCount > 0 {
		requiredPct = percent(requiredAvailable, requiredCount)
	}

	return MatchedRecipe{
		Recipe:                  recipe,
		MatchPercentage:         percent(len(available), len(recipe.Ingredients)),
		RequiredMatchPercentage: requiredPct,
		AvailableIngredients:    available,
		MissingIngredients:      missing,
		CanMake:                 requiredPct == 100,
	}
}

func (e *engine) PrioritizeByExpiration(matched []MatchedRecipe, pantryItems []PantryItem) []PrioritizedRecipe {
	expiringNames := ExpiringNames(pantryItems, e.now())

	out := make([]PrioritizedRecipe, 0, len(matched))
	for _, m := range matched {
		used := 0
		if len(expiringNames) > 0 {
			for _, ing := range m.AvailableIngredients {
				if e.matcher(expiringNames, ing.Name) {
					used++
				}
			}
		}
		out = append(out, PrioritizedRecipe{
			MatchedRecipe:     m,
			Prioritized:       true,
			UsesExpiringItems: used > 0,
			ExpiringItemsUsed: used,
			PriorityScore:     m.MatchPercentage + ExpiringItemBoost*used,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CanMake != out[j].CanMake {
			return out[i].CanMake
		}
		return out[i].PriorityScore > out[j].PriorityScore
	})
	return out
}

func (e *engine) WeightByPreferences(recipes []PrioritizedRecipe, preferences *FlavorPreferenceSet) []WeightedRecipe {
	out := make([]WeightedRecipe, 0, len(recipes))

	if preferences == nil || preferences.Likes == nil || preferences.Dislikes == nil {
		for _, r := range recipes {
			out = append(out, WeightedRecipe{PrioritizedRecipe: r, FinalScore: r.BaseScore()})
		}
		return out
	}

	likes := toSet(preferences.Likes)
	dislikes := toSet(preferences.Dislikes)

	for _, r := range recipes {
		liked, disliked := 0, 0
		for _, flavor := range r.Flavors {
			if _, ok := likes[flavor]; ok {
				liked++
			}
			if _, ok := dislikes[flavor]; ok {
				disliked++
			}
		}
		score := LikedFlavorWeight*liked - DislikedFlavorPenalty*disliked
		out = append(out, WeightedRecipe{
			PrioritizedRecipe: r,
			Weighted:          true,
			PreferenceScore:   score,
			FinalScore:        r.BaseScore() + score,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CanMake != out[j].CanMake {
			return out[i].CanMake
		}
		return out[i].FinalScore > out[j].FinalScore
	})
	return out
}

func (e *engine) Rank(recipes []Recipe, pantryItems []PantryItem, preferences *FlavorPreferenceSet) []WeightedRecipe {
	matched := e.CalculateMatches(recipes, pantryItems)
	prioritized := e.PrioritizeByExpiration(matched, pantryItems)
	return e.WeightByPreferences(prioritized, preferences)
}

// ExpiringNames returns the normalized names of items whose expiry falls
// within [0, ExpiringWindowDays] days of now, counted with ceil on the raw
// difference.
func ExpiringNames(pantryItems []PantryItem, now time.Time) []string {
	names := make([]string, 0)
	for _, item := range pantryItems {
		if item.Expiry.IsZero() {
			continue
		}
		days := int(math.Ceil(item.Expiry.Sub(now).Hours() / 24))
		if days >= 0 && days <= ExpiringWindowDays {
			names = append(names, normalize(item.Name))
		}
	}
	return names
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
