package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RecipeSourceManual = "manual"
	RecipeSourceMealDB = "themealdb"
)

type RecipeIngredient struct {
	Name     string `json:"name"`
	Amount   string `json:"amount,omitempty"`
	Required bool   `json:"required"`
}

type Recipe struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID          *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Source          string     `gorm:"index:idx_recipe_source_external" json:"source"`
	ExternalID      string     `gorm:"index:idx_recipe_source_external" json:"external_id,omitempty"`
	Title           string     `json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	ImageURL        string     `json:"image_url,omitempty"`
	PrepTimeMinutes int        `json:"prep_time_minutes"`
	CookTimeMinutes int        `json:"cook_time_minutes"`
	Servings        int        `json:"servings"`
	Category        string     `json:"category,omitempty"`
	Area            string     `json:"area,omitempty"`

	Ingredients  datatypes.JSONSlice[RecipeIngredient] `gorm:"type:jsonb" json:"ingredients"`
	Flavors      datatypes.JSONSlice[string]           `gorm:"type:jsonb" json:"flavors"`
	Instructions datatypes.JSONSlice[string]           `gorm:"type:jsonb" json:"instructions"`
	Tags         datatypes.JSONSlice[string]           `gorm:"type:jsonb" json:"tags"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

type RecipeBookmark struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_bookmark_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_bookmark_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}

type RecipeHistory struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid" json:"recipe_id"`
	CookedAt time.Time `gorm:"type:timestamp" json:"cooked_at"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}
