package meal

import (
	"Pantrii-Backend/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	MealRepository interface {
		CreateMeal(ctx context.Context, meal *entities.Meal) error
		GetMealByID(ctx context.Context, id string) (*entities.Meal, error)
		GetMeals(ctx context.Context, userID string, offset, limit int) ([]*entities.Meal, int64, error)
		DeleteMeal(ctx context.Context, id string) error

		CreatePlanEntry(ctx context.Context, entry *entities.MealPlan) error
		GetPlanEntryByID(ctx context.Context, id string) (*entities.MealPlan, error)
		// GetPlanEntries returns entries dated within [from, to).
		GetPlanEntries(ctx context.Context, userID string, from, to time.Time) ([]*entities.MealPlan, error)
		DeletePlanEntry(ctx context.Context, id string) error
	}

	mealRepository struct {
		db *gorm.DB
	}
)

func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) CreateMeal(ctx context.Context, meal *entities.Meal) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

func (r *mealRepository) GetMealByID(ctx context.Context, id string) (*entities.Meal, error) {
	var meal entities.Meal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *mealRepository) GetMeals(ctx context.Context, userID string, offset, limit int) ([]*entities.Meal, int64, error) {
	var meals []*entities.Meal
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.Meal{}).Where("user_id = ?", userID)
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("eaten_at desc").
		Offset(offset).
		Limit(limit).
		Find(&meals).Error; err != nil {
		return nil, 0, err
	}

	return meals, count, nil
}

func (r *mealRepository) DeleteMeal(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Meal{}).Error
}

func (r *mealRepository) CreatePlanEntry(ctx context.Context, entry *entities.MealPlan) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *mealRepository) GetPlanEntryByID(ctx context.Context, id string) (*entities.MealPlan, error) {
	var entry entities.MealPlan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *mealRepository) GetPlanEntries(ctx context.Context, userID string, from, to time.Time) ([]*entities.MealPlan, error) {
	var entries []*entities.MealPlan
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date asc").
		Order("created_at asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *mealRepository) DeletePlanEntry(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.MealPlan{}).Error
}
