package meal

import (
	"Pantrii-Backend/domain"
	"Pantrii-Backend/entities"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var wib = time.FixedZone("WIB", 7*60*60)

type fakeMealRepository struct {
	meals   []*entities.Meal
	entries []*entities.MealPlan
}

func (f *fakeMealRepository) CreateMeal(_ context.Context, meal *entities.Meal) error {
	f.meals = append(f.meals, meal)
	return nil
}

func (f *fakeMealRepository) GetMealByID(_ context.Context, id string) (*entities.Meal, error) {
	for _, m := range f.meals {
		if m.ID.String() == id {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMealRepository) GetMeals(_ context.Context, userID string, offset, limit int) ([]*entities.Meal, int64, error) {
	var mine []*entities.Meal
	for i := len(f.meals) - 1; i >= 0; i-- {
		if f.meals[i].UserID.String() == userID {
			mine = append(mine, f.meals[i])
		}
	}
	total := int64(len(mine))
	if offset >= len(mine) {
		return []*entities.Meal{}, total, nil
	}
	end := offset + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[offset:end], total, nil
}

func (f *fakeMealRepository) DeleteMeal(_ context.Context, id string) error {
	kept := f.meals[:0]
	for _, m := range f.meals {
		if m.ID.String() != id {
			kept = append(kept, m)
		}
	}
	f.meals = kept
	return nil
}

func (f *fakeMealRepository) CreatePlanEntry(_ context.Context, entry *entities.MealPlan) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeMealRepository) GetPlanEntryByID(_ context.Context, id string) (*entities.MealPlan, error) {
	for _, e := range f.entries {
		if e.ID.String() == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMealRepository) GetPlanEntries(_ context.Context, userID string, from, to time.Time) ([]*entities.MealPlan, error) {
	out := []*entities.MealPlan{}
	for _, e := range f.entries {
		if e.UserID.String() == userID && !e.Date.Before(from) && e.Date.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeMealRepository) DeletePlanEntry(_ context.Context, id string) error {
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.ID.String() != id {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

type trackedCombination struct {
	flavors []string
	liked   bool
}

type fakeTracker struct {
	calls []trackedCombination
	err   error
}

func (t *fakeTracker) TrackCombination(_ context.Context, flavors []string, liked bool, _ string) error {
	t.calls = append(t.calls, trackedCombination{flavors: flavors, liked: liked})
	if len(flavors) < 2 {
		return domain.ErrNotEnoughFlavors
	}
	return t.err
}

type fakeRecipes struct {
	recipes []*entities.Recipe
}

func (r *fakeRecipes) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	for _, recipe := range r.recipes {
		if recipe.ID.String() == id {
			return recipe, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fixture struct {
	svc     *mealService
	repo    *fakeMealRepository
	tracker *fakeTracker
	recipes *fakeRecipes
	userID  string
}

func newFixture() *fixture {
	repo := &fakeMealRepository{}
	tracker := &fakeTracker{}
	recipes := &fakeRecipes{}

	svc := NewMealService(repo, tracker, recipes).(*mealService)
	svc.loc = wib
	// Monday.
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 12, 30, 0, 0, wib) }

	return &fixture{svc: svc, repo: repo, tracker: tracker, recipes: recipes, userID: uuid.NewString()}
}

func TestLogMeal_TracksFlavorsAndDefaultsLiked(t *testing.T) {
	f := newFixture()

	res, err := f.svc.LogMeal(context.Background(), domain.LogMealRequest{
		Name:        "Nasi Goreng",
		Ingredients: []string{" rice ", "", "egg"},
		Flavors:     []string{"Salty", "umami", "salty", "crunchy"},
	}, f.userID)
	require.NoError(t, err)

	assert.Equal(t, []string{"rice", "egg"}, res.Ingredients)
	assert.Equal(t, []string{"salty", "umami"}, res.Flavors)
	assert.False(t, res.FlavorsSuggested)
	assert.True(t, res.Liked)
	assert.Equal(t, time.Date(2025, 3, 10, 12, 30, 0, 0, wib), res.EatenAt)

	require.Len(t, f.tracker.calls, 1)
	assert.Equal(t, []string{"salty", "umami"}, f.tracker.calls[0].flavors)
	assert.True(t, f.tracker.calls[0].liked)
}

func TestLogMeal_SuggestsFlavorsFromIngredients(t *testing.T) {
	f := newFixture()
	disliked := false

	res, err := f.svc.LogMeal(context.Background(), domain.LogMealRequest{
		Name:        "Teriyaki Chicken",
		EatenAt:     "2025-03-09",
		Ingredients: []string{"chicken", "soy sauce", "honey"},
		Liked:       &disliked,
	}, f.userID)
	require.NoError(t, err)

	assert.True(t, res.FlavorsSuggested)
	assert.NotEmpty(t, res.Flavors)
	assert.False(t, res.Liked)
	assert.Equal(t, "2025-03-09", res.EatenAt.Format("2006-01-02"))
	require.Len(t, f.tracker.calls, 1)
	assert.False(t, f.tracker.calls[0].liked)
}

func TestLogMeal_TrackingFailuresDoNotFailTheMeal(t *testing.T) {
	f := newFixture()
	f.tracker.err = errors.New("database is down")

	_, err := f.svc.LogMeal(context.Background(), domain.LogMealRequest{Name: "Soup", Flavors: []string{"salty"}}, f.userID)
	require.NoError(t, err)

	_, err = f.svc.LogMeal(context.Background(), domain.LogMealRequest{Name: "Curry", Flavors: []string{"spicy", "smoky"}}, f.userID)
	require.NoError(t, err)
	assert.Len(t, f.repo.meals, 2)
	assert.Len(t, f.tracker.calls, 2)
}

func TestLogMeal_RejectsBadDate(t *testing.T) {
	f := newFixture()

	_, err := f.svc.LogMeal(context.Background(), domain.LogMealRequest{Name: "Soup", EatenAt: "yesterday-ish"}, f.userID)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
	assert.Empty(t, f.repo.meals)
}

func TestGetMeals_NewestFirstWithPagination(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, name := range []string{"Breakfast", "Lunch", "Dinner"} {
		_, err := f.svc.LogMeal(ctx, domain.LogMealRequest{Name: name}, f.userID)
		require.NoError(t, err)
	}
	_, err := f.svc.LogMeal(ctx, domain.LogMealRequest{Name: "Someone else"}, uuid.NewString())
	require.NoError(t, err)

	res, err := f.svc.GetMeals(ctx, domain.PaginationRequest{Page: 1, Limit: 2}, f.userID)
	require.NoError(t, err)

	require.Len(t, res.Meals, 2)
	assert.Equal(t, "Dinner", res.Meals[0].Name)
	assert.Equal(t, "Lunch", res.Meals[1].Name)
	assert.Equal(t, int64(3), res.Pagination.Total)
}

func TestDeleteMeal_ChecksOwnership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	meal, err := f.svc.LogMeal(ctx, domain.LogMealRequest{Name: "Soup"}, f.userID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeleteMeal(ctx, meal.ID, uuid.NewString()), domain.ErrUserNotAllowed)
	assert.ErrorIs(t, f.svc.DeleteMeal(ctx, uuid.NewString(), f.userID), domain.ErrMealNotFound)

	require.NoError(t, f.svc.DeleteMeal(ctx, meal.ID, f.userID))
	assert.Empty(t, f.repo.meals)
}

func TestAddPlanEntry(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	recipe := &entities.Recipe{ID: uuid.New(), Title: "Rice Pudding"}
	f.recipes.recipes = append(f.recipes.recipes, recipe)

	t.Run("title from recipe", func(t *testing.T) {
		res, err := f.svc.AddPlanEntry(ctx, domain.AddPlanEntryRequest{
			Date:     "2025-03-12",
			Slot:     "Dinner",
			RecipeID: recipe.ID.String(),
		}, f.userID)
		require.NoError(t, err)
		assert.Equal(t, "Rice Pudding", res.Title)
		assert.Equal(t, "2025-03-12", res.Date)
		assert.Equal(t, domain.SlotDinner, res.Slot)
		assert.Equal(t, recipe.ID.String(), res.RecipeID)
	})

	cases := []struct {
		name string
		req  domain.AddPlanEntryRequest
		err  error
	}{
		{"bad date", domain.AddPlanEntryRequest{Date: "12/03/2025", Slot: "lunch", Title: "Salad"}, domain.ErrInvalidDate},
		{"bad slot", domain.AddPlanEntryRequest{Date: "2025-03-12", Slot: "brunch", Title: "Salad"}, domain.ErrInvalidMealSlot},
		{"no title", domain.AddPlanEntryRequest{Date: "2025-03-12", Slot: "lunch"}, domain.ErrPlanEntryNoTitle},
		{"unknown recipe", domain.AddPlanEntryRequest{Date: "2025-03-12", Slot: "lunch", RecipeID: uuid.NewString()}, domain.ErrRecipeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.AddPlanEntry(ctx, tc.req, f.userID)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestGetWeek_GroupsEntriesByDayAndSlot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	add := func(date, slot, title string) {
		_, err := f.svc.AddPlanEntry(ctx, domain.AddPlanEntryRequest{Date: date, Slot: slot, Title: title}, f.userID)
		require.NoError(t, err)
	}
	add("2025-03-13", domain.SlotDinner, "Curry")
	add("2025-03-13", domain.SlotBreakfast, "Oatmeal")
	add("2025-03-16", domain.SlotLunch, "Salad")
	add("2025-03-17", domain.SlotLunch, "Next week")

	week, err := f.svc.GetWeek(ctx, "2025-03-13", f.userID)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", week.WeekStart)
	assert.Equal(t, "2025-03-16", week.WeekEnd)
	require.Len(t, week.Days, 7)
	assert.Equal(t, "Monday", week.Days[0].Weekday)
	assert.Equal(t, "Sunday", week.Days[6].Weekday)

	thursday := week.Days[3]
	assert.Equal(t, "2025-03-13", thursday.Date)
	require.Len(t, thursday.Entries, 2)
	assert.Equal(t, "Oatmeal", thursday.Entries[0].Title)
	assert.Equal(t, "Curry", thursday.Entries[1].Title)

	require.Len(t, week.Days[6].Entries, 1)
	assert.Empty(t, week.Days[0].Entries)

	current, err := f.svc.GetWeek(ctx, "", f.userID)
	require.NoError(t, err)
	assert.Equal(t, week.WeekStart, current.WeekStart)

	_, err = f.svc.GetWeek(ctx, "not-a-date", f.userID)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestDeletePlanEntry(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry, err := f.svc.AddPlanEntry(ctx, domain.AddPlanEntryRequest{Date: "2025-03-11", Slot: "snack", Title: "Fruit"}, f.userID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeletePlanEntry(ctx, uuid.NewString(), f.userID), domain.ErrPlanEntryNotFound)
	assert.ErrorIs(t, f.svc.DeletePlanEntry(ctx, entry.ID, uuid.NewString()), domain.ErrUserNotAllowed)
	require.NoError(t, f.svc.DeletePlanEntry(ctx, entry.ID, f.userID))
	assert.Empty(t, f.repo.entries)
}
