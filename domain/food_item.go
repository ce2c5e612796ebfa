package domain

import (
	"Pantrii-Backend/pkg/expiry"
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddFoodItem       = "food item added successfully"
	MessageSuccessUpdateFoodItem    = "food item updated successfully"
	MessageSuccessDeleteFoodItem    = "food item deleted successfully"
	MessageSuccessGetFoodItems      = "food items retrieved successfully"
	MessageSuccessUploadFoodImage   = "food image uploaded successfully"
	MessageSuccessMarkAsDamaged     = "food item marked as damaged"
	MessageSuccessGetDashboardStats = "dashboard statistics retrieved successfully"
	MessageSuccessGetCategories     = "food categories retrieved successfully"
	MessageSuccessSendReminder      = "expiry reminder sent"

	MessageFailedAddFoodItem       = "failed to add food item"
	MessageFailedUpdateFoodItem    = "failed to update food item"
	MessageFailedDeleteFoodItem    = "failed to delete food item"
	MessageFailedGetFoodItems      = "failed to retrieve food items"
	MessageFailedUploadFoodImage   = "failed to upload food image"
	MessageFailedMarkAsDamaged     = "failed to mark food item as damaged"
	MessageFailedGetDashboardStats = "failed to retrieve dashboard statistics"
	MessageFailedExportPantry      = "failed to export pantry"
	MessageFailedSendReminder      = "failed to send expiry reminder"

	ErrFoodItemNotFound      = errors.New("food item not found")
	ErrInvalidExpiryDate     = errors.New("invalid expiry date")
	ErrInvalidCategory       = errors.New("invalid food category")
	ErrInvalidStatusFilter   = errors.New("invalid status filter")
	ErrUnauthorizedAccess    = errors.New("unauthorized access to food item")
	ErrNothingToRemind       = errors.New("no expiring items to remind about")
	ErrReminderMissingTarget = errors.New("user has no email address")
)

const (
	StatusFilterAll = "all"
	StatusDamaged   = "damaged"
)

type FoodCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var FoodCategories = []FoodCategory{
	{ID: "produce", Name: "Fruits & Vegetables"},
	{ID: "meat", Name: "Meat & Seafood"},
	{ID: "dairy", Name: "Dairy & Eggs"},
	{ID: "grains", Name: "Grains & Pasta"},
	{ID: "spices", Name: "Spices & Condiments"},
	{ID: "snacks", Name: "Snacks"},
	{ID: "beverages", Name: "Beverages"},
	{ID: "other", Name: "Other"},
}

const DefaultFoodCategory = "other"

func IsValidFoodCategory(id string) bool {
	for _, c := range FoodCategories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// IsValidStatusFilter accepts "all", "damaged" and every classifier status.
func IsValidStatusFilter(status string) bool {
	switch status {
	case StatusFilterAll, StatusDamaged,
		expiry.StatusExpired, expiry.StatusExpiring, expiry.StatusWarning,
		expiry.StatusGood, expiry.StatusUnknown:
		return true
	}
	return false
}

type (
	AddFoodItemRequest struct {
		Name       string `json:"name" validate:"required,max=100"`
		Quantity   string `json:"quantity" validate:"omitempty,max=50"`
		CategoryID string `json:"category_id" validate:"omitempty"`
		ExpiryDate string `json:"expiry_date" validate:"omitempty"`
		Notes      string `json:"notes" validate:"omitempty,max=500"`
	}

	UpdateFoodItemRequest struct {
		Name       string `json:"name" validate:"omitempty,max=100"`
		Quantity   string `json:"quantity" validate:"omitempty,max=50"`
		CategoryID string `json:"category_id" validate:"omitempty"`
		ExpiryDate string `json:"expiry_date" validate:"omitempty"`
		Notes      string `json:"notes" validate:"omitempty,max=500"`
		// ClearExpiry removes the stored expiry date.
		ClearExpiry bool `json:"clear_expiry"`
	}

	GetFoodItemsRequest struct {
		Status string
		PaginationRequest
	}

	UploadFoodImageRequest struct {
		FoodItemID string                `json:"food_id" form:"food_id" validate:"required,uuid"`
		Image      *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	MarkAsDamagedRequest struct {
		FoodItemID string `json:"food_item_id" validate:"required,uuid"`
	}

	FoodItemResponse struct {
		ID          string        `json:"id"`
		Name        string        `json:"name"`
		Quantity    string        `json:"quantity"`
		CategoryID  string        `json:"category_id"`
		ExpiryDate  string        `json:"expiry_date,omitempty"`
		Notes       string        `json:"notes,omitempty"`
		ImageURL    string        `json:"image_url,omitempty"`
		IsDamaged   bool          `json:"is_damaged"`
		Expiry      expiry.Status `json:"expiry"`
		RelativeDue string        `json:"relative_due,omitempty"`
		CreatedAt   time.Time     `json:"created_at"`
	}

	FoodItemListResponse struct {
		Items      []FoodItemResponse `json:"items"`
		Pagination PaginationResponse `json:"pagination"`
	}

	DashboardStatsResponse struct {
		TotalItems    int `json:"total_items"`
		ExpiredItems  int `json:"expired_items"`
		ExpiringItems int `json:"expiring_items"`
		WarningItems  int `json:"warning_items"`
		GoodItems     int `json:"good_items"`
		UnknownItems  int `json:"unknown_items"`
		DamagedItems  int `json:"damaged_items"`
		// CriticalItems is expired plus expiring today.
		CriticalItems int `json:"critical_items"`
	}

	ExpiryReminderResponse struct {
		SentTo   string `json:"sent_to"`
		Critical int    `json:"critical"`
		Warning  int    `json:"warning"`
	}
)
