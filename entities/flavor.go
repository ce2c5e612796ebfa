package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PreferenceLike    = "like"
	PreferenceDislike = "dislike"
	PreferenceNeutral = "neutral"
)

type FlavorPreference struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_flavor_pref_user_flavor" json:"user_id"`
	Flavor     string    `gorm:"uniqueIndex:idx_flavor_pref_user_flavor" json:"flavor"`
	Preference string    `json:"preference"`

	Timestamp
}

// FlavorCombination counts how often a user ate a set of flavors together.
// Key is the sorted flavor ids joined by commas.
type FlavorCombination struct {
	ID       uuid.UUID                   `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID                   `gorm:"type:uuid;uniqueIndex:idx_flavor_combo_user_key" json:"user_id"`
	Key      string                      `gorm:"column:combo_key;uniqueIndex:idx_flavor_combo_user_key" json:"key"`
	Flavors  datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"flavors"`
	Count    int                         `json:"count"`
	Liked    int                         `json:"liked"`
	LastUsed time.Time                   `gorm:"type:timestamp" json:"last_used"`

	Timestamp
}
