package flavor

import (
	"Pantrii-Backend/entities"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	FlavorRepository interface {
		GetPreferences(ctx context.Context, userID string) ([]entities.FlavorPreference, error)
		UpsertPreference(ctx context.Context, pref *entities.FlavorPreference) error
		DeletePreference(ctx context.Context, userID, flavor string) error

		GetCombinations(ctx context.Context, userID string) ([]entities.FlavorCombination, error)
		GetCombinationByKey(ctx context.Context, userID, key string) (*entities.FlavorCombination, error)
		SaveCombination(ctx context.Context, combination *entities.FlavorCombination) error
		DeleteCombinations(ctx context.Context, userID string) error
	}

	flavorRepository struct {
		db *gorm.DB
	}
)

func NewFlavorRepository(db *gorm.DB) FlavorRepository {
	return &flavorRepository{db: db}
}

func (r *flavorRepository) GetPreferences(ctx context.Context, userID string) ([]entities.FlavorPreference, error) {
	var prefs []entities.FlavorPreference
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}

func (r *flavorRepository) UpsertPreference(ctx context.Context, pref *entities.FlavorPreference) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "flavor"}},
		DoUpdates: clause.AssignmentColumns([]string{"preference", "updated_at"}),
	}).Create(pref).Error
}

func (r *flavorRepository) DeletePreference(ctx context.Context, userID, flavor string) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("user_id = ? AND flavor = ?", userID, flavor).
		Delete(&entities.FlavorPreference{}).Error
}

func (r *flavorRepository) GetCombinations(ctx context.Context, userID string) ([]entities.FlavorCombination, error) {
	var combos []entities.FlavorCombination
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&combos).Error; err != nil {
		return nil, err
	}
	return combos, nil
}

func (r *flavorRepository) GetCombinationByKey(ctx context.Context, userID, key string) (*entities.FlavorCombination, error) {
	var combo entities.FlavorCombination
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND combo_key = ?", userID, key).
		First(&combo).Error; err != nil {
		return nil, err
	}
	return &combo, nil
}

func (r *flavorRepository) SaveCombination(ctx context.Context, combination *entities.FlavorCombination) error {
	return r.db.WithContext(ctx).Save(combination).Error
}

func (r *flavorRepository) DeleteCombinations(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("user_id = ?", userID).
		Delete(&entities.FlavorCombination{}).Error
}
