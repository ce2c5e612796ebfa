package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes         = "success get recipes"
	MessageSuccessGetRecipeDetail    = "success get recipe detail"
	MessageSuccessCreateRecipe       = "recipe created successfully"
	MessageSuccessDeleteRecipe       = "recipe deleted successfully"
	MessageSuccessGetSuggestions     = "success get recipe suggestions"
	MessageSuccessImportRecipes      = "recipes imported successfully"
	MessageSuccessBookmarkRecipe     = "recipe bookmarked successfully"
	MessageSuccessRemoveBookmark     = "bookmark removed successfully"
	MessageSuccessGetBookmarks       = "success get bookmarked recipes"
	MessageSuccessGetHistory         = "success get recipe history"
	MessageSuccessMarkAsCooked       = "recipe marked as cooked successfully"
	MessageSuccessSearchRemoteRecipe = "success search remote recipes"

	MessageFailedGetRecipes         = "failed to get recipes"
	MessageFailedGetRecipeDetail    = "failed to get recipe detail"
	MessageFailedCreateRecipe       = "failed to create recipe"
	MessageFailedDeleteRecipe       = "failed to delete recipe"
	MessageFailedGetSuggestions     = "failed to get recipe suggestions"
	MessageFailedImportRecipes      = "failed to import recipes"
	MessageFailedBookmarkRecipe     = "failed to bookmark recipe"
	MessageFailedRemoveBookmark     = "failed to remove bookmark"
	MessageFailedGetBookmarks       = "failed to get bookmarked recipes"
	MessageFailedGetHistory         = "failed to get recipe history"
	MessageFailedMarkAsCooked       = "failed to mark recipe as cooked"
	MessageFailedExportShoppingList = "failed to export shopping list"
	MessageFailedSearchRemoteRecipe = "failed to search remote recipes"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrNoIngredients            = errors.New("recipe needs at least one ingredient")
	ErrBookmarkNotFound         = errors.New("bookmark not found")
	ErrNothingToBuy             = errors.New("every ingredient is already in the pantry")
	ErrRecipeSourceUnavailable  = errors.New("recipe source unavailable")
)

type (
	IngredientRequest struct {
		Name     string `json:"name" validate:"required,max=100"`
		Amount   string `json:"amount" validate:"omitempty,max=50"`
		Required bool   `json:"required"`
	}

	CreateRecipeRequest struct {
		Title           string              `json:"title" validate:"required,max=150"`
		Description     string              `json:"description" validate:"omitempty,max=2000"`
		ImageURL        string              `json:"image_url" validate:"omitempty,url"`
		PrepTimeMinutes int                 `json:"prep_time_minutes" validate:"omitempty,min=0"`
		CookTimeMinutes int                 `json:"cook_time_minutes" validate:"omitempty,min=0"`
		Servings        int                 `json:"servings" validate:"omitempty,min=0"`
		Category        string              `json:"category" validate:"omitempty,max=50"`
		Ingredients     []IngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
		Flavors         []string            `json:"flavors" validate:"omitempty,dive,required"`
		Instructions    []string            `json:"instructions" validate:"omitempty,dive,required"`
	}

	SuggestionRequest struct {
		CanMakeOnly bool `query:"can_make_only"`
		Limit       int  `query:"limit"`
	}

	ImportRecipesRequest struct {
		Ingredient string `json:"ingredient" validate:"required,max=100"`
		Limit      int    `json:"limit" validate:"omitempty,min=1,max=25"`
	}

	ImportRecipesResponse struct {
		Imported int      `json:"imported"`
		Updated  int      `json:"updated"`
		Recipes  []Recipe `json:"recipes"`
	}

	BookmarkRecipeRequest struct {
		RecipeID string `json:"recipe_id" validate:"required,uuid"`
	}

	MarkAsCookedRequest struct {
		RecipeID string `json:"recipe_id" validate:"required,uuid"`
	}

	Ingredient struct {
		Name     string `json:"name"`
		Amount   string `json:"amount,omitempty"`
		Required bool   `json:"required"`
	}

	Recipe struct {
		ID              string       `json:"id"`
		Source          string       `json:"source"`
		ExternalID      string       `json:"external_id,omitempty"`
		Title           string       `json:"title"`
		Description     string       `json:"description,omitempty"`
		ImageURL        string       `json:"image_url,omitempty"`
		PrepTimeMinutes int          `json:"prep_time_minutes"`
		CookTimeMinutes int          `json:"cook_time_minutes"`
		Servings        int          `json:"servings"`
		Category        string       `json:"category,omitempty"`
		Area            string       `json:"area,omitempty"`
		Ingredients     []Ingredient `json:"ingredients"`
		Flavors         []string     `json:"flavors"`
		Instructions    []string     `json:"instructions,omitempty"`
		Tags            []string     `json:"tags,omitempty"`
		IsBookmarked    bool         `json:"is_bookmarked"`
		CreatedAt       time.Time    `json:"created_at"`
	}

	RecipeListResponse struct {
		Recipes    []Recipe           `json:"recipes"`
		Pagination PaginationResponse `json:"pagination"`
	}

	RecipeSuggestion struct {
		Recipe
		MatchPercentage         int          `json:"match_percentage"`
		RequiredMatchPercentage int          `json:"required_match_percentage"`
		CanMake                 bool         `json:"can_make"`
		AvailableIngredients    []Ingredient `json:"available_ingredients"`
		MissingIngredients      []Ingredient `json:"missing_ingredients"`
		UsesExpiringItems       bool         `json:"uses_expiring_items"`
		ExpiringItemsUsed       int          `json:"expiring_items_used"`
		PriorityScore           int          `json:"priority_score"`
		PreferenceScore         int          `json:"preference_score"`
		FinalScore              int          `json:"final_score"`
	}

	SuggestionResponse struct {
		Suggestions   []RecipeSuggestion `json:"suggestions"`
		Total         int                `json:"total"`
		PantryItems   int                `json:"pantry_items"`
		ExpiringItems int                `json:"expiring_items"`
		Weighted      bool               `json:"weighted"`
	}

	IngredientAvailability struct {
		Name        string `json:"name"`
		Amount      string `json:"amount,omitempty"`
		Required    bool   `json:"required"`
		IsAvailable bool   `json:"is_available"`
		IsExpiring  bool   `json:"is_expiring"`
		// MatchedItems names the pantry items that satisfy this ingredient.
		MatchedItems []string `json:"matched_items,omitempty"`
	}

	RecipeDetailResponse struct {
		Recipe
		Ingredients             []IngredientAvailability `json:"ingredients"`
		MatchPercentage         int                      `json:"match_percentage"`
		RequiredMatchPercentage int                      `json:"required_match_percentage"`
		CanMake                 bool                     `json:"can_make"`
		MissingIngredients      []Ingredient             `json:"missing_ingredients"`
		TimesCooked             int64                    `json:"times_cooked"`
	}

	RecipeHistoryItem struct {
		Recipe
		CookedAt time.Time `json:"cooked_at"`
	}

	RecipeHistoryResponse struct {
		Items      []RecipeHistoryItem `json:"items"`
		Pagination PaginationResponse  `json:"pagination"`
	}

	RemoteRecipeSummary struct {
		ExternalID string `json:"external_id"`
		Title      string `json:"title"`
		ImageURL   string `json:"image_url,omitempty"`
	}
)
