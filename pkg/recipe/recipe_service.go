package recipe

import (
	"Pantrii-Backend/domain"
	"Pantrii-Backend/entities"
	"Pantrii-Backend/internal/utils"
	"Pantrii-Backend/internal/utils/export"
	"Pantrii-Backend/pkg/flavor"
	"Pantrii-Backend/pkg/matching"
	"Pantrii-Backend/pkg/mealdb"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultImportLimit = 10

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.Recipe, error)
		ListRecipes(ctx context.Context, page domain.PaginationRequest, userID string) (domain.RecipeListResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		GetSmartSuggestions(ctx context.Context, req domain.SuggestionRequest, userID string) (domain.SuggestionResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetailResponse, error)
		ExportShoppingList(ctx context.Context, recipeID string, userID string) ([]byte, error)

		ImportFromMealDB(ctx context.Context, req domain.ImportRecipesRequest, userID string) (domain.ImportRecipesResponse, error)
		SearchRemote(ctx context.Context, name string) ([]domain.RemoteRecipeSummary, error)

		BookmarkRecipe(ctx context.Context, req domain.BookmarkRecipeRequest, userID string) error
		RemoveBookmark(ctx context.Context, req domain.BookmarkRecipeRequest, userID string) error
		GetBookmarkedRecipes(ctx context.Context, page domain.PaginationRequest, userID string) (domain.RecipeListResponse, error)
		MarkAsCooked(ctx context.Context, req domain.MarkAsCookedRequest, userID string) error
		GetRecipeHistory(ctx context.Context, page domain.PaginationRequest, userID string) (domain.RecipeHistoryResponse, error)
	}

	// PantrySource supplies the engine's pantry snapshot.
	PantrySource interface {
		GetPantrySnapshot(ctx context.Context, userID string) ([]matching.PantryItem, error)
	}

	// PreferenceSource supplies flavor likes and dislikes; a nil set means
	// the user has none.
	PreferenceSource interface {
		GetPreferenceSet(ctx context.Context, userID string) (*matching.FlavorPreferenceSet, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		pantry           PantrySource
		preferences      PreferenceSource
		mealdb           mealdb.Client
		engine           matching.Engine
		matcher          matching.IngredientMatcher
		now              func() time.Time
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	pantry PantrySource,
	preferences PreferenceSource,
	mealdbClient mealdb.Client,
) RecipeService {
	return newRecipeService(recipeRepository, pantry, preferences, mealdbClient, time.Now)
}

func newRecipeService(
	recipeRepository RecipeRepository,
	pantry PantrySource,
	preferences PreferenceSource,
	mealdbClient mealdb.Client,
	now func() time.Time,
) *recipeService {
	matcher := matching.SubstringMatcher
	return &recipeService{
		recipeRepository: recipeRepository,
		pantry:           pantry,
		preferences:      preferences,
		mealdb:           mealdbClient,
		engine: newLoggedEngine(matching.NewEngine(
			matching.WithMatcher(matcher),
			matching.WithClock(now),
		)),
		matcher: matcher,
		now:     now,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.Recipe, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Recipe{}, domain.ErrParseUUID
	}

	ingredients := make([]entities.RecipeIngredient, 0, len(req.Ingredients))
	names := make([]string, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			continue
		}
		ingredients = append(ingredients, entities.RecipeIngredient{
			Name:     name,
			Amount:   strings.TrimSpace(ing.Amount),
			Required: ing.Required,
		})
		names = append(names, name)
	}
	if len(ingredients) == 0 {
		return domain.Recipe{}, domain.ErrNoIngredients
	}

	flavors := normalizeFlavors(req.Flavors)
	if len(flavors) == 0 {
		flavors = flavor.SuggestTags(names, flavor.DefaultMaxSuggestions)
	}

	recipe := &entities.Recipe{
		ID:              uuid.New(),
		UserID:          &userUUID,
		Source:          entities.RecipeSourceManual,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        req.Servings,
		Category:        req.Category,
		Ingredients:     ingredients,
		Flavors:         flavors,
		Instructions:    req.Instructions,
		Tags:            []string{},
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.Recipe{}, err
	}

	return toRecipeDTO(recipe, false), nil
}

func (s *recipeService) ListRecipes(ctx context.Context, page domain.PaginationRequest, userID string) (domain.RecipeListResponse, error) {
	page = page.Normalize()

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, userID, page.Offset(), page.Limit)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	bookmarked, err := s.recipeRepository.GetBookmarkedIDs(ctx, userID)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		_, isBookmarked := bookmarked[recipe.ID]
		result = append(result, toRecipeDTO(recipe, isBookmarked))
	}

	return domain.RecipeListResponse{
		Recipes:    result,
		Pagination: domain.NewPaginationResponse(page, count),
	}, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return err
	}

	if recipe.UserID == nil || recipe.UserID.String() != userID {
		return domain.ErrUnauthorizedRecipeAccess
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) GetSmartSuggestions(ctx context.Context, req domain.SuggestionRequest, userID string) (domain.SuggestionResponse, error) {
	catalog, err := s.recipeRepository.GetCatalog(ctx, userID)
	if err != nil {
		return domain.SuggestionResponse{}, err
	}

	pantry, err := s.pantry.GetPantrySnapshot(ctx, userID)
	if err != nil {
		return domain.SuggestionResponse{}, err
	}

	prefs, err := s.preferences.GetPreferenceSet(ctx, userID)
	if err != nil {
		utils.LogWarn("failed to load flavor preferences, ranking unweighted",
			zap.String("user_id", userID), zap.Error(err))
		prefs = nil
	}

	bookmarked, err := s.recipeRepository.GetBookmarkedIDs(ctx, userID)
	if err != nil {
		return domain.SuggestionResponse{}, err
	}

	byID := make(map[string]*entities.Recipe, len(catalog))
	candidates := make([]matching.Recipe, 0, len(catalog))
	for _, recipe := range catalog {
		byID[recipe.ID.String()] = recipe
		candidates = append(candidates, toMatchingRecipe(recipe))
	}

	ranked := s.engine.Rank(candidates, pantry, prefs)

	suggestions := make([]domain.RecipeSuggestion, 0, len(ranked))
	for _, r := range ranked {
		if req.CanMakeOnly && !r.CanMake {
			continue
		}
		recipe, ok := byID[r.ID]
		if !ok {
			continue
		}
		_, isBookmarked := bookmarked[recipe.ID]
		suggestions = append(suggestions, toSuggestion(recipe, r, isBookmarked))
	}

	total := len(suggestions)
	if req.Limit > 0 && len(suggestions) > req.Limit {
		suggestions = suggestions[:req.Limit]
	}

	return domain.SuggestionResponse{
		Suggestions:   suggestions,
		Total:         total,
		PantryItems:   len(pantry),
		ExpiringItems: len(matching.ExpiringNames(pantry, s.now())),
		Weighted:      prefs != nil && prefs.Likes != nil && prefs.Dislikes != nil,
	}, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetailResponse, error) {
	recipe, err := s.getVisibleRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	pantry, err := s.pantry.GetPantrySnapshot(ctx, userID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	isBookmarked, err := s.recipeRepository.IsRecipeBookmarked(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	timesCooked, err := s.recipeRepository.CountRecipeHistory(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	res := domain.RecipeDetailResponse{
		Recipe:             toRecipeDTO(recipe, isBookmarked),
		Ingredients:        s.availability(recipe, pantry),
		MissingIngredients: []domain.Ingredient{},
		TimesCooked:        timesCooked,
	}

	matched := s.engine.CalculateMatches([]matching.Recipe{toMatchingRecipe(recipe)}, pantry)
	if len(matched) == 1 {
		res.MatchPercentage = matched[0].MatchPercentage
		res.RequiredMatchPercentage = matched[0].RequiredMatchPercentage
		res.CanMake = matched[0].CanMake
		res.MissingIngredients = toIngredientDTOs(matched[0].MissingIngredients)
	}

	return res, nil
}

// availability lists, per ingredient, the pantry items that satisfy it using
// the same matcher as the engine.
func (s *recipeService) availability(recipe *entities.Recipe, pantry []matching.PantryItem) []domain.IngredientAvailability {
	expiring := make(map[string]struct{})
	for _, name := range matching.ExpiringNames(pantry, s.now()) {
		expiring[name] = struct{}{}
	}

	out := make([]domain.IngredientAvailability, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		row := domain.IngredientAvailability{
			Name:     ing.Name,
			Amount:   ing.Amount,
			Required: ing.Required,
		}
		for _, item := range pantry {
			key := strings.ToLower(strings.TrimSpace(item.Name))
			if !s.matcher([]string{key}, ing.Name) {
				continue
			}
			row.IsAvailable = true
			row.MatchedItems = append(row.MatchedItems, item.Name)
			if _, ok := expiring[key]; ok {
				row.IsExpiring = true
			}
		}
		out = append(out, row)
	}
	return out
}

func (s *recipeService) ExportShoppingList(ctx context.Context, recipeID string, userID string) ([]byte, error) {
	detail, err := s.GetRecipeDetail(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	if len(detail.MissingIngredients) == 0 {
		return nil, domain.ErrNothingToBuy
	}

	rows := make([][]any, 0, len(detail.MissingIngredients))
	for _, ing := range detail.MissingIngredients {
		required := "optional"
		if ing.Required {
			required = "required"
		}
		rows = append(rows, []any{ing.Name, ing.Amount, required, detail.Title})
	}

	data, err := export.WriteXLSX(export.Sheet{
		Name:   "Shopping List",
		Header: []string{"Ingredient", "Amount", "Required", "Recipe"},
		Rows:   rows,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build shopping list: %w", err)
	}
	return data, nil
}

func (s *recipeService) ImportFromMealDB(ctx context.Context, req domain.ImportRecipesRequest, userID string) (domain.ImportRecipesResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultImportLimit
	}

	remote, err := s.mealdb.FilterByIngredient(ctx, req.Ingredient, limit)
	if err != nil {
		utils.LogError("themealdb import failed", zap.String("ingredient", req.Ingredient), zap.Error(err))
		return domain.ImportRecipesResponse{}, fmt.Errorf("%w: %v", domain.ErrRecipeSourceUnavailable, err)
	}

	bookmarked, err := s.recipeRepository.GetBookmarkedIDs(ctx, userID)
	if err != nil {
		return domain.ImportRecipesResponse{}, err
	}

	res := domain.ImportRecipesResponse{Recipes: []domain.Recipe{}}
	for _, meal := range remote {
		if meal.ExternalID == "" || meal.Title == "" || len(meal.Ingredients) == 0 {
			continue
		}

		recipe, created, err := s.upsertImported(ctx, meal)
		if err != nil {
			return domain.ImportRecipesResponse{}, err
		}
		if created {
			res.Imported++
		} else {
			res.Updated++
		}
		_, isBookmarked := bookmarked[recipe.ID]
		res.Recipes = append(res.Recipes, toRecipeDTO(recipe, isBookmarked))
	}

	utils.LogInfo("themealdb import finished",
		zap.String("ingredient", req.Ingredient),
		zap.Int("imported", res.Imported),
		zap.Int("updated", res.Updated),
	)
	return res, nil
}

func (s *recipeService) upsertImported(ctx context.Context, meal mealdb.Recipe) (*entities.Recipe, bool, error) {
	ingredients := make([]entities.RecipeIngredient, 0, len(meal.Ingredients))
	names := make([]string, 0, len(meal.Ingredients))
	for _, ing := range meal.Ingredients {
		ingredients = append(ingredients, entities.RecipeIngredient{
			Name:     ing.Name,
			Amount:   ing.Measure,
			Required: true,
		})
		names = append(names, ing.Name)
	}

	recipe, err := s.recipeRepository.GetRecipeByExternalID(ctx, entities.RecipeSourceMealDB, meal.ExternalID)
	created := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
		recipe = &entities.Recipe{
			ID:         uuid.New(),
			Source:     entities.RecipeSourceMealDB,
			ExternalID: meal.ExternalID,
		}
		created = true
	}

	recipe.Title = meal.Title
	recipe.ImageURL = meal.Thumbnail
	recipe.Category = meal.Category
	recipe.Area = meal.Area
	recipe.Ingredients = ingredients
	recipe.Flavors = flavor.SuggestTags(names, flavor.DefaultMaxSuggestions)
	recipe.Instructions = meal.Instructions
	recipe.Tags = meal.Tags

	if created {
		err = s.recipeRepository.CreateRecipe(ctx, recipe)
	} else {
		err = s.recipeRepository.UpdateRecipe(ctx, recipe)
	}
	if err != nil {
		return nil, false, err
	}
	return recipe, created, nil
}

func (s *recipeService) SearchRemote(ctx context.Context, name string) ([]domain.RemoteRecipeSummary, error) {
	remote, err := s.mealdb.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRecipeSourceUnavailable, err)
	}

	out := make([]domain.RemoteRecipeSummary, 0, len(remote))
	for _, meal := range remote {
		out = append(out, domain.RemoteRecipeSummary{
			ExternalID: meal.ExternalID,
			Title:      meal.Title,
			ImageURL:   meal.Thumbnail,
		})
	}
	return out, nil
}

func (s *recipeService) BookmarkRecipe(ctx context.Context, req domain.BookmarkRecipeRequest, userID string) error {
	if _, err := s.getVisibleRecipe(ctx, req.RecipeID, userID); err != nil {
		return err
	}
	return s.recipeRepository.BookmarkRecipe(ctx, userID, req.RecipeID)
}

func (s *recipeService) RemoveBookmark(ctx context.Context, req domain.BookmarkRecipeRequest, userID string) error {
	if err := s.recipeRepository.RemoveBookmark(ctx, userID, req.RecipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrBookmarkNotFound
		}
		return err
	}
	return nil
}

func (s *recipeService) GetBookmarkedRecipes(ctx context.Context, page domain.PaginationRequest, userID string) (domain.RecipeListResponse, error) {
	page = page.Normalize()

	recipes, count, err := s.recipeRepository.GetRecipeBookmarks(ctx, userID, page.Offset(), page.Limit)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, toRecipeDTO(recipe, true))
	}

	return domain.RecipeListResponse{
		Recipes:    result,
		Pagination: domain.NewPaginationResponse(page, count),
	}, nil
}

func (s *recipeService) MarkAsCooked(ctx context.Context, req domain.MarkAsCookedRequest, userID string) error {
	if _, err := s.getVisibleRecipe(ctx, req.RecipeID, userID); err != nil {
		return err
	}
	return s.recipeRepository.AddRecipeHistory(ctx, userID, req.RecipeID, s.now())
}

func (s *recipeService) GetRecipeHistory(ctx context.Context, page domain.PaginationRequest, userID string) (domain.RecipeHistoryResponse, error) {
	page = page.Normalize()

	histories, count, err := s.recipeRepository.GetRecipeHistory(ctx, userID, page.Offset(), page.Limit)
	if err != nil {
		return domain.RecipeHistoryResponse{}, err
	}

	bookmarked, err := s.recipeRepository.GetBookmarkedIDs(ctx, userID)
	if err != nil {
		return domain.RecipeHistoryResponse{}, err
	}

	items := make([]domain.RecipeHistoryItem, 0, len(histories))
	for _, h := range histories {
		if h.Recipe == nil {
			continue
		}
		_, isBookmarked := bookmarked[h.RecipeID]
		items = append(items, domain.RecipeHistoryItem{
			Recipe:   toRecipeDTO(h.Recipe, isBookmarked),
			CookedAt: h.CookedAt,
		})
	}

	return domain.RecipeHistoryResponse{
		Items:      items,
		Pagination: domain.NewPaginationResponse(page, count),
	}, nil
}

func (s *recipeService) getRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// getVisibleRecipe hides other users' manual recipes behind not-found.
func (s *recipeService) getVisibleRecipe(ctx context.Context, recipeID string, userID string) (*entities.Recipe, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != nil && recipe.UserID.String() != userID {
		return nil, domain.ErrRecipeNotFound
	}
	return recipe, nil
}

func normalizeFlavors(flavors []string) []string {
	seen := make(map[string]struct{}, len(flavors))
	out := make([]string, 0, len(flavors))
	for _, f := range flavors {
		f = strings.ToLower(strings.TrimSpace(f))
		if !flavor.IsCategory(f) {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

func toMatchingRecipe(recipe *entities.Recipe) matching.Recipe {
	ingredients := make([]matching.Ingredient, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		ingredients = append(ingredients, matching.Ingredient{
			Name:     ing.Name,
			Amount:   ing.Amount,
			Required: ing.Required,
		})
	}

	return matching.Recipe{
		ID:          recipe.ID.String(),
		Title:       recipe.Title,
		Description: recipe.Description,
		Ingredients: ingredients,
		Flavors:     recipe.Flavors,
		PrepTime:    recipe.PrepTimeMinutes,
		CookTime:    recipe.CookTimeMinutes,
		Servings:    recipe.Servings,
		ImageURL:    recipe.ImageURL,
	}
}

func toRecipeDTO(recipe *entities.Recipe, isBookmarked bool) domain.Recipe {
	ingredients := make([]domain.Ingredient, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		ingredients = append(ingredients, domain.Ingredient{
			Name:     ing.Name,
			Amount:   ing.Amount,
			Required: ing.Required,
		})
	}

	flavors := []string(recipe.Flavors)
	if flavors == nil {
		flavors = []string{}
	}

	return domain.Recipe{
		ID:              recipe.ID.String(),
		Source:          recipe.Source,
		ExternalID:      recipe.ExternalID,
		Title:           recipe.Title,
		Description:     recipe.Description,
		ImageURL:        recipe.ImageURL,
		PrepTimeMinutes: recipe.PrepTimeMinutes,
		CookTimeMinutes: recipe.CookTimeMinutes,
		Servings:        recipe.Servings,
		Category:        recipe.Category,
		Area:            recipe.Area,
		Ingredients:     ingredients,
		Flavors:         flavors,
		Instructions:    recipe.Instructions,
		Tags:            recipe.Tags,
		IsBookmarked:    isBookmarked,
		CreatedAt:       recipe.CreatedAt,
	}
}

func toIngredientDTOs(ingredients []matching.Ingredient) []domain.Ingredient {
	out := make([]domain.Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, domain.Ingredient{
			Name:     ing.Name,
			Amount:   ing.Amount,
			Required: ing.Required,
		})
	}
	return out
}

func toSuggestion(recipe *entities.Recipe, r matching.WeightedRecipe, isBookmarked bool) domain.RecipeSuggestion {
	return domain.RecipeSuggestion{
		Recipe:                  toRecipeDTO(recipe, isBookmarked),
		MatchPercentage:         r.MatchPercentage,
		RequiredMatchPercentage: r.RequiredMatchPercentage,
		CanMake:                 r.CanMake,
		AvailableIngredients:    toIngredientDTOs(r.AvailableIngredients),
		MissingIngredients:      toIngredientDTOs(r.MissingIngredients),
		UsesExpiringItems:       r.UsesExpiringItems,
		ExpiringItemsUsed:       r.ExpiringItemsUsed,
		PriorityScore:           r.PriorityScore,
		PreferenceScore:         r.PreferenceScore,
		FinalScore:              r.FinalScore,
	}
}
