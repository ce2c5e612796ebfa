package mealdb

import (
	"Pantrii-Backend/internal/utils"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

	requestTimeout   = 15 * time.Second
	detailFetchLimit = 4
)

var ErrUpstream = errors.New("themealdb request failed")

type (
	Client interface {
		// FilterByIngredient lists meals using ingredient, each expanded to its
		// full record. limit <= 0 keeps every match.
		FilterByIngredient(ctx context.Context, ingredient string, limit int) ([]Recipe, error)
		LookupByID(ctx context.Context, id string) (*Recipe, error)
		SearchByName(ctx context.Context, name string) ([]Recipe, error)
	}

	mealsEnvelope struct {
		Meals []rawMeal `json:"meals"`
	}

	client struct {
		http  *resty.Client
		cache Cache
	}
)

func NewClient(baseURL string, cache Cache) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if cache == nil {
		cache = NewMemoryCache(time.Hour)
	}

	http := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(requestTimeout).
		SetHeader("Accept", "application/json")

	return &client{http: http, cache: cache}
}

func (c *client) FilterByIngredient(ctx context.Context, ingredient string, limit int) ([]Recipe, error) {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return []Recipe{}, nil
	}

	summaries, err := c.fetch(ctx, "/filter.php", map[string]string{"i": ingredient})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}

	recipes := make([]Recipe, len(summaries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailFetchLimit)

	for i, summary := range summaries {
		i, summary := i, summary
		g.Go(func() error {
			id := summary.str("idMeal")
			detail, err := c.LookupByID(gctx, id)
			if err != nil || detail == nil {
				if err != nil {
					utils.LogWarn("mealdb detail lookup failed, using summary",
						zap.String("id", id), zap.Error(err))
				}
				recipes[i] = Normalize(summary)
				return nil
			}
			recipes[i] = *detail
			return nil
		})
	}
	_ = g.Wait()

	return recipes, nil
}

func (c *client) LookupByID(ctx context.Context, id string) (*Recipe, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}

	meals, err := c.fetch(ctx, "/lookup.php", map[string]string{"i": id})
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, nil
	}
	recipe := Normalize(meals[0])
	return &recipe, nil
}

func (c *client) SearchByName(ctx context.Context, name string) ([]Recipe, error) {
	meals, err := c.fetch(ctx, "/search.php", map[string]string{"s": strings.TrimSpace(name)})
	if err != nil {
		return nil, err
	}

	recipes := make([]Recipe, 0, len(meals))
	for _, m := range meals {
		recipes = append(recipes, Normalize(m))
	}
	return recipes, nil
}

func (c *client) fetch(ctx context.Context, path string, params map[string]string) ([]rawMeal, error) {
	key := cacheKey(path, params)

	var cached mealsEnvelope
	if ok, err := c.cache.Get(ctx, key, &cached); err != nil {
		utils.LogWarn("mealdb cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		utils.LogDebug("mealdb cache hit", zap.String("key", key))
		return cached.Meals, nil
	}

	var envelope mealsEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&envelope).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstream, path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s returned %d", ErrUpstream, path, resp.StatusCode())
	}

	if err := c.cache.Set(ctx, key, envelope); err != nil {
		utils.LogWarn("mealdb cache write failed", zap.String("key", key), zap.Error(err))
	}
	return envelope.Meals, nil
}

func cacheKey(path string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(strings.TrimPrefix(path, "/"))
	for _, k := range keys {
		b.WriteString(":")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(strings.ToLower(params[k]))
	}
	return b.String()
}
