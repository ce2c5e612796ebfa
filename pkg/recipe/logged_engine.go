package recipe

import (
	"Pantrii-Backend/internal/utils"
	"Pantrii-Backend/pkg/matching"
	"time"

	"go.uber.org/zap"
)

// loggedEngine records stage sizes and timings around a matching.Engine,
// which itself stays free of logging.
type loggedEngine struct {
	next matching.Engine
}

func newLoggedEngine(next matching.Engine) matching.Engine {
	return &loggedEngine{next: next}
}

func (e *loggedEngine) CalculateMatches(recipes []matching.Recipe, pantryItems []matching.PantryItem) []matching.MatchedRecipe {
	start := time.Now()
	out := e.next.CalculateMatches(recipes, pantryItems)
	utils.LogDebug("matching: calculate matches",
		zap.Int("recipes", len(recipes)),
		zap.Int("pantry_items", len(pantryItems)),
		zap.Int("matched", len(out)),
		zap.Duration("took", time.Since(start)),
	)
	return out
}

func (e *loggedEngine) PrioritizeByExpiration(matched []matching.MatchedRecipe, pantryItems []matching.PantryItem) []matching.PrioritizedRecipe {
	start := time.Now()
	out := e.next.PrioritizeByExpiration(matched, pantryItems)

	boosted := 0
	for _, r := range out {
		if r.UsesExpiringItems {
			boosted++
		}
	}
	utils.LogDebug("matching: prioritize by expiration",
		zap.Int("recipes", len(out)),
		zap.Int("using_expiring", boosted),
		zap.Duration("took", time.Since(start)),
	)
	return out
}

func (e *loggedEngine) WeightByPreferences(recipes []matching.PrioritizedRecipe, preferences *matching.FlavorPreferenceSet) []matching.WeightedRecipe {
	start := time.Now()
	out := e.next.WeightByPreferences(recipes, preferences)
	utils.LogDebug("matching: weight by preferences",
		zap.Int("recipes", len(out)),
		zap.Bool("weighted", len(out) > 0 && out[0].Weighted),
		zap.Duration("took", time.Since(start)),
	)
	return out
}

// Rank runs the stages through the decorator so each one is logged.
func (e *loggedEngine) Rank(recipes []matching.Recipe, pantryItems []matching.PantryItem, preferences *matching.FlavorPreferenceSet) []matching.WeightedRecipe {
	start := time.Now()
	matched := e.CalculateMatches(recipes, pantryItems)
	prioritized := e.PrioritizeByExpiration(matched, pantryItems)
	out := e.WeightByPreferences(prioritized, preferences)

	canMake := 0
	for _, r := range out {
		if r.CanMake {
			canMake++
		}
	}
	utils.LogInfo("matching: ranked recipes",
		zap.Int("recipes", len(out)),
		zap.Int("can_make", canMake),
		zap.Duration("took", time.Since(start)),
	)
	return out
}
