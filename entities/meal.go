package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Meal struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID                   `gorm:"type:uuid;index" json:"user_id"`
	Name        string                      `json:"name"`
	EatenAt     time.Time                   `gorm:"type:timestamp;index" json:"eaten_at"`
	Ingredients datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"ingredients"`
	Flavors     datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"flavors"`
	Notes       string                      `gorm:"type:text" json:"notes,omitempty"`
	Liked       bool                        `json:"liked"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

type MealPlan struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	Date     time.Time  `gorm:"type:date;index" json:"date"`
	Slot     string     `json:"slot"`
	RecipeID *uuid.UUID `gorm:"type:uuid" json:"recipe_id,omitempty"`
	Title    string     `json:"title"`
	Notes    string     `gorm:"type:text" json:"notes,omitempty"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Timestamp
}
