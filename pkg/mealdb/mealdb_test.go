package mealdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FullRecord(t *testing.T) {
	raw := rawMeal{
		"idMeal":          "52772",
		"strMeal":         "Teriyaki Chicken Casserole",
		"strCategory":     "Chicken",
		"strArea":         "Japanese",
		"strInstructions": "Preheat oven. Mix the sauce.\r\nBake for 20 minutes",
		"strMealThumb":    "https://img/teriyaki.jpg",
		"strTags":         "Meat, Casserole,",
		"strIngredient1":  "soy sauce",
		"strMeasure1":     "3/4 cup ",
		"strIngredient2":  " ",
		"strIngredient3":  "chicken breasts",
		"strMeasure3":     nil,
		"strIngredient4":  nil,
	}

	got := Normalize(raw)
	assert.Equal(t, "52772", got.ExternalID)
	assert.Equal(t, "Teriyaki Chicken Casserole", got.Title)
	assert.Equal(t, "Japanese", got.Area)
	assert.Equal(t, []string{"Preheat oven", "Mix the sauce", "Bake for 20 minutes"}, got.Instructions)
	assert.Equal(t, []string{"Meat", "Casserole"}, got.Tags)
	assert.Equal(t, []Ingredient{
		{Name: "soy sauce", Measure: "3/4 cup"},
		{Name: "chicken breasts"},
	}, got.Ingredients)
}

func TestNormalize_SummaryRecord(t *testing.T) {
	got := Normalize(rawMeal{"idMeal": "1", "strMeal": "Toast", "strMealThumb": "t.jpg"})
	assert.Equal(t, "Toast", got.Title)
	assert.Empty(t, got.Ingredients)
	assert.NotNil(t, got.Instructions)
	assert.NotNil(t, got.Tags)
}

func TestMemoryCache_Expires(t *testing.T) {
	cache := NewMemoryCache(time.Minute).(*memoryCache)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", mealsEnvelope{Meals: []rawMeal{{"idMeal": "1"}}}))

	var got mealsEnvelope
	ok, err := cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", got.Meals[0].str("idMeal"))

	now = now.Add(2 * time.Minute)
	ok, err = cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = cache.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func newTestServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")

		var body any
		switch r.URL.Path {
		case "/filter.php":
			body = map[string]any{"meals": []map[string]any{
				{"idMeal": "1", "strMeal": "Chicken Rice", "strMealThumb": "1.jpg"},
				{"idMeal": "2", "strMeal": "Chicken Soup", "strMealThumb": "2.jpg"},
				{"idMeal": "3", "strMeal": "Chicken Pie", "strMealThumb": "3.jpg"},
			}}
		case "/lookup.php":
			switch r.URL.Query().Get("i") {
			case "1":
				body = map[string]any{"meals": []map[string]any{{
					"idMeal": "1", "strMeal": "Chicken Rice", "strCategory": "Chicken",
					"strIngredient1": "chicken", "strMeasure1": "200g",
					"strIngredient2": "rice", "strMeasure2": "1 cup",
				}}}
			case "2":
				w.WriteHeader(http.StatusInternalServerError)
				return
			default:
				body = map[string]any{"meals": nil}
			}
		case "/search.php":
			body = map[string]any{"meals": []map[string]any{
				{"idMeal": "9", "strMeal": "Arrabiata", "strIngredient1": "penne"},
			}}
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
}

func TestClient_FilterByIngredient_FallsBackToSummary(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, NewMemoryCache(time.Hour))
	got, err := c.FilterByIngredient(context.Background(), "chicken", 0)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Chicken", got[0].Category)
	assert.Len(t, got[0].Ingredients, 2)

	// Lookup errors and empty lookups keep the summary.
	assert.Equal(t, "Chicken Soup", got[1].Title)
	assert.Empty(t, got[1].Ingredients)
	assert.Equal(t, "3.jpg", got[2].Thumbnail)
}

func TestClient_FilterByIngredient_LimitAndCache(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, NewMemoryCache(time.Hour))
	ctx := context.Background()

	got, err := c.FilterByIngredient(ctx, "Chicken", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))

	_, err = c.FilterByIngredient(ctx, "chicken", 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))

	empty, err := c.FilterByIngredient(ctx, "  ", 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestClient_LookupAndSearch(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	ctx := context.Background()

	recipe, err := c.LookupByID(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, recipe)
	assert.Equal(t, "Chicken Rice", recipe.Title)

	missing, err := c.LookupByID(ctx, "404")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = c.LookupByID(ctx, "2")
	assert.ErrorIs(t, err, ErrUpstream)

	found, err := c.SearchByName(ctx, "arrabiata")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, []Ingredient{{Name: "penne"}}, found[0].Ingredients)
}
