package migration

import (
	"Pantrii-Backend/entities"
	"Pantrii-Backend/internal/utils"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
		return fmt.Errorf("error creating uuid-ossp extension: %w", err)
	}

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"food item", &entities.FoodItem{}},
		{"recipe", &entities.Recipe{}},
		{"recipe bookmark", &entities.RecipeBookmark{}},
		{"recipe history", &entities.RecipeHistory{}},
		{"flavor preference", &entities.FlavorPreference{}},
		{"flavor combination", &entities.FlavorCombination{}},
		{"meal", &entities.Meal{}},
		{"meal plan", &entities.MealPlan{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", m.name, err)
		}
	}

	utils.LogInfo("database migration complete", zap.Int("tables", len(models)))
	return nil
}
