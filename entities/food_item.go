package entities

import (
	"time"

	"github.com/google/uuid"
)

// FoodItem is a pantry entry. Expiry status is derived on read, only the
// damaged flag is stored.
type FoodItem struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	Name       string     `json:"name"`
	Quantity   string     `json:"quantity"`
	CategoryID string     `json:"category_id"`
	ExpiryDate *time.Time `gorm:"type:date;index" json:"expiry_date"`
	Notes      string     `gorm:"type:text" json:"notes,omitempty"`
	ImageURL   string     `json:"image_url,omitempty"`
	IsDamaged  bool       `json:"is_damaged"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
