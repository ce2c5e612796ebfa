package recipe

import (
	"Pantrii-Backend/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id string) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipeByExternalID(ctx context.Context, source, externalID string) (*entities.Recipe, error)
		// GetRecipes pages through the catalog visible to the user: their own
		// recipes plus imported ones.
		GetRecipes(ctx context.Context, userID string, offset, limit int) ([]*entities.Recipe, int64, error)
		GetCatalog(ctx context.Context, userID string) ([]*entities.Recipe, error)

		GetRecipeBookmarks(ctx context.Context, userID string, offset, limit int) ([]*entities.Recipe, int64, error)
		GetBookmarkedIDs(ctx context.Context, userID string) (map[uuid.UUID]struct{}, error)
		BookmarkRecipe(ctx context.Context, userID, recipeID string) error
		RemoveBookmark(ctx context.Context, userID, recipeID string) error
		IsRecipeBookmarked(ctx context.Context, userID, recipeID string) (bool, error)

		AddRecipeHistory(ctx context.Context, userID, recipeID string, cookedAt time.Time) error
		GetRecipeHistory(ctx context.Context, userID string, offset, limit int) ([]*entities.RecipeHistory, int64, error)
		CountRecipeHistory(ctx context.Context, userID, recipeID string) (int64, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeBookmark{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipeByExternalID(ctx context.Context, source, externalID string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("source = ? AND external_id = ?", source, externalID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) visibleTo(ctx context.Context, userID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("user_id = ? OR user_id IS NULL", userID)
}

func (r *recipeRepository) GetRecipes(ctx context.Context, userID string, offset, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	if err := r.visibleTo(ctx, userID).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.visibleTo(ctx, userID).
		Offset(offset).
		Limit(limit).
		Order("created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetCatalog(ctx context.Context, userID string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.visibleTo(ctx, userID).Order("created_at asc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetRecipeBookmarks(ctx context.Context, userID string, offset, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Joins("JOIN recipe_bookmarks ON recipes.id = recipe_bookmarks.recipe_id").
		Where("recipe_bookmarks.user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN recipe_bookmarks ON recipes.id = recipe_bookmarks.recipe_id").
		Where("recipe_bookmarks.user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("recipe_bookmarks.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetBookmarkedIDs(ctx context.Context, userID string) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeBookmark{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}

	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (r *recipeRepository) BookmarkRecipe(ctx context.Context, userID, recipeID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return err
	}

	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return err
	}

	var existingBookmark entities.RecipeBookmark
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userUUID, recipeUUID).
		First(&existingBookmark).Error; err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	bookmark := entities.RecipeBookmark{
		ID:        uuid.New(),
		UserID:    userUUID,
		RecipeID:  recipeUUID,
		CreatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).Create(&bookmark).Error
}

// RemoveBookmark returns gorm.ErrRecordNotFound when nothing was deleted.
func (r *recipeRepository) RemoveBookmark(ctx context.Context, userID, recipeID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.RecipeBookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recipeRepository) IsRecipeBookmarked(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeBookmark{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) AddRecipeHistory(ctx context.Context, userID, recipeID string, cookedAt time.Time) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return err
	}

	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return err
	}

	history := entities.RecipeHistory{
		ID:       uuid.New(),
		UserID:   userUUID,
		RecipeID: recipeUUID,
		CookedAt: cookedAt,
	}

	return r.db.WithContext(ctx).Create(&history).Error
}

func (r *recipeRepository) GetRecipeHistory(ctx context.Context, userID string, offset, limit int) ([]*entities.RecipeHistory, int64, error) {
	var histories []*entities.RecipeHistory
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeHistory{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("cooked_at desc").
		Find(&histories).Error; err != nil {
		return nil, 0, err
	}

	return histories, count, nil
}

func (r *recipeRepository) CountRecipeHistory(ctx context.Context, userID, recipeID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeHistory{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
