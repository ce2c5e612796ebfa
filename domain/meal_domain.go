package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessLogMeal        = "meal logged successfully"
	MessageSuccessGetMeals       = "success get meal history"
	MessageSuccessDeleteMeal     = "meal deleted successfully"
	MessageSuccessGetMealPlan    = "success get meal plan"
	MessageSuccessAddPlanEntry   = "meal plan entry added"
	MessageSuccessDeletePlanItem = "meal plan entry deleted"

	MessageFailedLogMeal        = "failed to log meal"
	MessageFailedGetMeals       = "failed to get meal history"
	MessageFailedDeleteMeal     = "failed to delete meal"
	MessageFailedGetMealPlan    = "failed to get meal plan"
	MessageFailedAddPlanEntry   = "failed to add meal plan entry"
	MessageFailedDeletePlanItem = "failed to delete meal plan entry"

	ErrMealNotFound      = errors.New("meal not found")
	ErrPlanEntryNotFound = errors.New("meal plan entry not found")
	ErrInvalidMealSlot   = errors.New("slot must be breakfast, lunch, dinner or snack")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrPlanEntryNoTitle  = errors.New("meal plan entry needs a title or a recipe")
)

const (
	SlotBreakfast = "breakfast"
	SlotLunch     = "lunch"
	SlotDinner    = "dinner"
	SlotSnack     = "snack"
)

var MealSlots = []string{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}

type (
	LogMealRequest struct {
		Name        string   `json:"name" validate:"required,max=150"`
		EatenAt     string   `json:"eaten_at" validate:"omitempty"`
		Ingredients []string `json:"ingredients" validate:"omitempty,dive,required"`
		Flavors     []string `json:"flavors" validate:"omitempty,dive,required"`
		Notes       string   `json:"notes" validate:"omitempty,max=1000"`
		Liked       *bool    `json:"liked"`
	}

	MealResponse struct {
		ID               string    `json:"id"`
		Name             string    `json:"name"`
		EatenAt          time.Time `json:"eaten_at"`
		Ingredients      []string  `json:"ingredients"`
		Flavors          []string  `json:"flavors"`
		FlavorsSuggested bool      `json:"flavors_suggested"`
		Notes            string    `json:"notes,omitempty"`
		Liked            bool      `json:"liked"`
	}

	MealListResponse struct {
		Meals      []MealResponse     `json:"meals"`
		Pagination PaginationResponse `json:"pagination"`
	}

	AddPlanEntryRequest struct {
		Date     string `json:"date" validate:"required"`
		Slot     string `json:"slot" validate:"required,oneof=breakfast lunch dinner snack"`
		RecipeID string `json:"recipe_id" validate:"omitempty,uuid"`
		Title    string `json:"title" validate:"omitempty,max=150"`
		Notes    string `json:"notes" validate:"omitempty,max=500"`
	}

	PlanEntryResponse struct {
		ID       string `json:"id"`
		Date     string `json:"date"`
		Slot     string `json:"slot"`
		RecipeID string `json:"recipe_id,omitempty"`
		Title    string `json:"title"`
		Notes    string `json:"notes,omitempty"`
	}

	PlanDay struct {
		Date    string              `json:"date"`
		Weekday string              `json:"weekday"`
		Entries []PlanEntryResponse `json:"entries"`
	}

	WeekPlanResponse struct {
		WeekStart string    `json:"week_start"`
		WeekEnd   string    `json:"week_end"`
		Days      []PlanDay `json:"days"`
	}
)
