package meal

import (
	"Pantrii-Backend/domain"
	"Pantrii-Backend/entities"
	"Pantrii-Backend/internal/utils"
	"Pantrii-Backend/pkg/expiry"
	"Pantrii-Backend/pkg/flavor"
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const daysPerWeek = 7

type (
	MealService interface {
		LogMeal(ctx context.Context, req domain.LogMealRequest, userID string) (domain.MealResponse, error)
		GetMeals(ctx context.Context, page domain.PaginationRequest, userID string) (domain.MealListResponse, error)
		DeleteMeal(ctx context.Context, id string, userID string) error

		// GetWeek returns the Monday-based week containing start (today when
		// empty), one entry per day.
		GetWeek(ctx context.Context, start string, userID string) (domain.WeekPlanResponse, error)
		AddPlanEntry(ctx context.Context, req domain.AddPlanEntryRequest, userID string) (domain.PlanEntryResponse, error)
		DeletePlanEntry(ctx context.Context, id string, userID string) error
	}

	// CombinationTracker records the flavors of a logged meal.
	CombinationTracker interface {
		TrackCombination(ctx context.Context, flavors []string, liked bool, userID string) error
	}

	RecipeFinder interface {
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
	}

	mealService struct {
		mealRepository MealRepository
		combinations   CombinationTracker
		recipes        RecipeFinder
		loc            *time.Location
		now            func() time.Time
	}
)

func NewMealService(mealRepository MealRepository, combinations CombinationTracker, recipes RecipeFinder) MealService {
	return &mealService{
		mealRepository: mealRepository,
		combinations:   combinations,
		recipes:        recipes,
		loc:            utils.GetLocation(),
		now:            time.Now,
	}
}

func (s *mealService) LogMeal(ctx context.Context, req domain.LogMealRequest, userID string) (domain.MealResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.MealResponse{}, domain.ErrParseUUID
	}

	eatenAt := s.now().In(s.loc)
	if req.EatenAt != "" {
		if eatenAt, err = expiry.Parse(req.EatenAt, s.loc); err != nil {
			return domain.MealResponse{}, domain.ErrInvalidDate
		}
	}

	ingredients := make([]string, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			ingredients = append(ingredients, ing)
		}
	}

	flavors := normalizeFlavors(req.Flavors)
	suggested := false
	if len(flavors) == 0 && len(ingredients) > 0 {
		flavors = flavor.SuggestTags(ingredients, flavor.DefaultMaxSuggestions)
		suggested = len(flavors) > 0
	}

	liked := true
	if req.Liked != nil {
		liked = *req.Liked
	}

	meal := &entities.Meal{
		ID:          uuid.New(),
		UserID:      userUUID,
		Name:        strings.TrimSpace(req.Name),
		EatenAt:     eatenAt,
		Ingredients: ingredients,
		Flavors:     flavors,
		Notes:       req.Notes,
		Liked:       liked,
	}

	if err := s.mealRepository.CreateMeal(ctx, meal); err != nil {
		return domain.MealResponse{}, err
	}

	if err := s.combinations.TrackCombination(ctx, flavors, liked, userID); err != nil && !errors.Is(err, domain.ErrNotEnoughFlavors) {
		utils.LogWarn("failed to track flavor combination",
			zap.String("user_id", userID),
			zap.Strings("flavors", flavors),
			zap.Error(err),
		)
	}

	res := toMealResponse(meal)
	res.FlavorsSuggested = suggested
	return res, nil
}

func (s *mealService) GetMeals(ctx context.Context, page domain.PaginationRequest, userID string) (domain.MealListResponse, error) {
	page = page.Normalize()

	meals, count, err := s.mealRepository.GetMeals(ctx, userID, page.Offset(), page.Limit)
	if err != nil {
		return domain.MealListResponse{}, err
	}

	res := make([]domain.MealResponse, 0, len(meals))
	for _, m := range meals {
		res = append(res, toMealResponse(m))
	}

	return domain.MealListResponse{
		Meals:      res,
		Pagination: domain.NewPaginationResponse(page, count),
	}, nil
}

func (s *mealService) DeleteMeal(ctx context.Context, id string, userID string) error {
	meal, err := s.mealRepository.GetMealByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMealNotFound
		}
		return err
	}

	if meal.UserID.String() != userID {
		return domain.ErrUserNotAllowed
	}

	return s.mealRepository.DeleteMeal(ctx, id)
}

func (s *mealService) GetWeek(ctx context.Context, start string, userID string) (domain.WeekPlanResponse, error) {
	day := s.now().In(s.loc)
	if start != "" {
		parsed, err := time.ParseInLocation(expiry.DateLayout, strings.TrimSpace(start), s.loc)
		if err != nil {
			return domain.WeekPlanResponse{}, domain.ErrInvalidDate
		}
		day = parsed
	}

	monday := weekStart(day, s.loc)
	entries, err := s.mealRepository.GetPlanEntries(ctx, userID, calendarUTC(monday), calendarUTC(monday.AddDate(0, 0, daysPerWeek)))
	if err != nil {
		return domain.WeekPlanResponse{}, err
	}

	byDate := make(map[string][]*entities.MealPlan, daysPerWeek)
	for _, e := range entries {
		key := e.Date.Format(expiry.DateLayout)
		byDate[key] = append(byDate[key], e)
	}

	days := make([]domain.PlanDay, 0, daysPerWeek)
	for i := 0; i < daysPerWeek; i++ {
		d := monday.AddDate(0, 0, i)
		key := d.Format(expiry.DateLayout)

		dayEntries := byDate[key]
		sort.SliceStable(dayEntries, func(a, b int) bool {
			return slotOrder(dayEntries[a].Slot) < slotOrder(dayEntries[b].Slot)
		})

		planned := make([]domain.PlanEntryResponse, 0, len(dayEntries))
		for _, e := range dayEntries {
			planned = append(planned, toPlanEntryResponse(e))
		}

		days = append(days, domain.PlanDay{
			Date:    key,
			Weekday: d.Weekday().String(),
			Entries: planned,
		})
	}

	return domain.WeekPlanResponse{
		WeekStart: monday.Format(expiry.DateLayout),
		WeekEnd:   monday.AddDate(0, 0, daysPerWeek-1).Format(expiry.DateLayout),
		Days:      days,
	}, nil
}

func (s *mealService) AddPlanEntry(ctx context.Context, req domain.AddPlanEntryRequest, userID string) (domain.PlanEntryResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.PlanEntryResponse{}, domain.ErrParseUUID
	}

	date, err := time.ParseInLocation(expiry.DateLayout, strings.TrimSpace(req.Date), s.loc)
	if err != nil {
		return domain.PlanEntryResponse{}, domain.ErrInvalidDate
	}

	slot := strings.ToLower(strings.TrimSpace(req.Slot))
	if slotOrder(slot) == len(domain.MealSlots) {
		return domain.PlanEntryResponse{}, domain.ErrInvalidMealSlot
	}

	entry := &entities.MealPlan{
		ID:     uuid.New(),
		UserID: userUUID,
		Date:   calendarUTC(date),
		Slot:   slot,
		Title:  strings.TrimSpace(req.Title),
		Notes:  req.Notes,
	}

	if req.RecipeID != "" {
		recipe, err := s.recipes.GetRecipeByID(ctx, req.RecipeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.PlanEntryResponse{}, domain.ErrRecipeNotFound
			}
			return domain.PlanEntryResponse{}, err
		}
		if recipe.UserID != nil && recipe.UserID.String() != userID {
			return domain.PlanEntryResponse{}, domain.ErrRecipeNotFound
		}
		entry.RecipeID = &recipe.ID
		if entry.Title == "" {
			entry.Title = recipe.Title
		}
	}

	if entry.Title == "" {
		return domain.PlanEntryResponse{}, domain.ErrPlanEntryNoTitle
	}

	if err := s.mealRepository.CreatePlanEntry(ctx, entry); err != nil {
		return domain.PlanEntryResponse{}, err
	}

	return toPlanEntryResponse(entry), nil
}

func (s *mealService) DeletePlanEntry(ctx context.Context, id string, userID string) error {
	entry, err := s.mealRepository.GetPlanEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPlanEntryNotFound
		}
		return err
	}

	if entry.UserID.String() != userID {
		return domain.ErrUserNotAllowed
	}

	return s.mealRepository.DeletePlanEntry(ctx, id)
}

// weekStart returns local midnight of the Monday on or before t.
func weekStart(t time.Time, loc *time.Location) time.Time {
	day := expiry.Midnight(t, loc)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// calendarUTC keeps the calendar date of t at UTC midnight, the way the date
// column stores it.
func calendarUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func slotOrder(slot string) int {
	for i, s := range domain.MealSlots {
		if s == slot {
			return i
		}
	}
	return len(domain.MealSlots)
}

func normalizeFlavors(flavors []string) []string {
	seen := make(map[string]struct{}, len(flavors))
	out := make([]string, 0, len(flavors))
	for _, f := range flavors {
		f = strings.ToLower(strings.TrimSpace(f))
		if !flavor.IsCategory(f) {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

func toMealResponse(m *entities.Meal) domain.MealResponse {
	ingredients := []string(m.Ingredients)
	if ingredients == nil {
		ingredients = []string{}
	}
	flavors := []string(m.Flavors)
	if flavors == nil {
		flavors = []string{}
	}

	return domain.MealResponse{
		ID:          m.ID.String(),
		Name:        m.Name,
		EatenAt:     m.EatenAt,
		Ingredients: ingredients,
		Flavors:     flavors,
		Notes:       m.Notes,
		Liked:       m.Liked,
	}
}

func toPlanEntryResponse(e *entities.MealPlan) domain.PlanEntryResponse {
	res := domain.PlanEntryResponse{
		ID:    e.ID.String(),
		Date:  e.Date.Format(expiry.DateLayout),
		Slot:  e.Slot,
		Title: e.Title,
		Notes: e.Notes,
	}
	if e.RecipeID != nil {
		res.RecipeID = e.RecipeID.String()
	}
	return res
}
