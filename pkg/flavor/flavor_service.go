package flavor

import (
	"Pantrii-Backend/domain"
	"Pantrii-Backend/entities"
	"Pantrii-Backend/pkg/matching"
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultRecommendationLimit = 3
	defaultPairingScore        = 0.5
	// combinationMaturity is the usage count at which a combination's score
	// stops being scaled down.
	combinationMaturity = 5
)

type (
	FlavorService interface {
		GetCategories() []Category
		DetectFlavors(req domain.DetectFlavorsRequest) domain.DetectFlavorsResponse
		GetPreferences(ctx context.Context, userID string) (domain.FlavorPreferencesResponse, error)
		GetPreferenceSet(ctx context.Context, userID string) (*matching.FlavorPreferenceSet, error)
		SetPreference(ctx context.Context, req domain.SetFlavorPreferenceRequest, userID string) (domain.FlavorPreferencesResponse, error)
		TrackCombination(ctx context.Context, flavors []string, liked bool, userID string) error
		RecommendCombinations(ctx context.Context, baseFlavor string, limit int, userID string) ([]domain.FlavorCombinationRecommendation, error)
		ResetCombinations(ctx context.Context, userID string) error
	}

	flavorService struct {
		flavorRepository FlavorRepository
	}
)

func NewFlavorService(flavorRepository FlavorRepository) FlavorService {
	return &flavorService{
		flavorRepository: flavorRepository,
	}
}

func (s *flavorService) GetCategories() []Category {
	return Categories
}

func (s *flavorService) DetectFlavors(req domain.DetectFlavorsRequest) domain.DetectFlavorsResponse {
	detection := DetectFlavors(req.Ingredients)

	max := req.Max
	if max <= 0 {
		max = DefaultMaxSuggestions
	}
	suggested := detection.Flavors
	if len(suggested) > max {
		suggested = suggested[:max]
	}

	return domain.DetectFlavorsResponse{
		Flavors:    detection.Flavors,
		Scores:     detection.Scores,
		Confidence: detection.Confidence,
		Suggested:  suggested,
	}
}

func (s *flavorService) GetPreferences(ctx context.Context, userID string) (domain.FlavorPreferencesResponse, error) {
	prefs, err := s.flavorRepository.GetPreferences(ctx, userID)
	if err != nil {
		return domain.FlavorPreferencesResponse{}, err
	}
	return toPreferencesResponse(prefs), nil
}

// GetPreferenceSet returns nil when the user has never stored a preference,
// so ranking passes recipes through unweighted.
func (s *flavorService) GetPreferenceSet(ctx context.Context, userID string) (*matching.FlavorPreferenceSet, error) {
	prefs, err := s.flavorRepository.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(prefs) == 0 {
		return nil, nil
	}

	res := toPreferencesResponse(prefs)
	return &matching.FlavorPreferenceSet{
		Likes:    res.Likes,
		Dislikes: res.Dislikes,
	}, nil
}

func (s *flavorService) SetPreference(ctx context.Context, req domain.SetFlavorPreferenceRequest, userID string) (domain.FlavorPreferencesResponse, error) {
	flavor := strings.ToLower(strings.TrimSpace(req.Flavor))
	if !IsCategory(flavor) {
		return domain.FlavorPreferencesResponse{}, domain.ErrUnknownFlavor
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FlavorPreferencesResponse{}, domain.ErrParseUUID
	}

	switch req.Preference {
	case entities.PreferenceNeutral:
		if err := s.flavorRepository.DeletePreference(ctx, userID, flavor); err != nil {
			return domain.FlavorPreferencesResponse{}, err
		}
	case entities.PreferenceLike, entities.PreferenceDislike:
		pref := &entities.FlavorPreference{
			ID:         uuid.New(),
			UserID:     userUUID,
			Flavor:     flavor,
			Preference: req.Preference,
		}
		if err := s.flavorRepository.UpsertPreference(ctx, pref); err != nil {
			return domain.FlavorPreferencesResponse{}, err
		}
	default:
		return domain.FlavorPreferencesResponse{}, domain.ErrInvalidPreference
	}

	return s.GetPreferences(ctx, userID)
}

func (s *flavorService) TrackCombination(ctx context.Context, flavors []string, liked bool, userID string) error {
	key, sorted := combinationKey(flavors)
	if len(sorted) < 2 {
		return domain.ErrNotEnoughFlavors
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	combo, err := s.flavorRepository.GetCombinationByKey(ctx, userID, key)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		combo = &entities.FlavorCombination{
			ID:      uuid.New(),
			UserID:  userUUID,
			Key:     key,
			Flavors: sorted,
		}
	}

	combo.Count++
	if liked {
		combo.Liked++
	}
	combo.LastUsed = time.Now()

	return s.flavorRepository.SaveCombination(ctx, combo)
}

func (s *flavorService) RecommendCombinations(ctx context.Context, baseFlavor string, limit int, userID string) ([]domain.FlavorCombinationRecommendation, error) {
	base := strings.ToLower(strings.TrimSpace(baseFlavor))
	if base == "" {
		return nil, domain.ErrMissingBaseFlavor
	}
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	combos, err := s.flavorRepository.GetCombinations(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(combos) == 0 {
		return defaultCombinations(base, limit), nil
	}

	relevant := make([]entities.FlavorCombination, 0, len(combos))
	for _, c := range combos {
		for _, f := range c.Flavors {
			if f == base {
				relevant = append(relevant, c)
				break
			}
		}
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		ri, rj := likedRatio(relevant[i]), likedRatio(relevant[j])
		if ri != rj {
			return ri > rj
		}
		return relevant[i].Count > relevant[j].Count
	})

	if len(relevant) > limit {
		relevant = relevant[:limit]
	}

	out := make([]domain.FlavorCombinationRecommendation, 0, len(relevant))
	for _, c := range relevant {
		paired := make([]string, 0, len(c.Flavors))
		for _, f := range c.Flavors {
			if f != base {
				paired = append(paired, f)
			}
		}
		out = append(out, domain.FlavorCombinationRecommendation{
			BaseFlavor:    base,
			PairedFlavors: paired,
			Score:         likedRatio(c) * math.Min(1, float64(c.Count)/combinationMaturity),
		})
	}
	return out, nil
}

func (s *flavorService) ResetCombinations(ctx context.Context, userID string) error {
	return s.flavorRepository.DeleteCombinations(ctx, userID)
}

func defaultCombinations(base string, limit int) []domain.FlavorCombinationRecommendation {
	pairs, ok := defaultPairings[base]
	if !ok {
		return []domain.FlavorCombinationRecommendation{}
	}
	if len(pairs) > limit {
		pairs = pairs[:limit]
	}

	out := make([]domain.FlavorCombinationRecommendation, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, domain.FlavorCombinationRecommendation{
			BaseFlavor:    base,
			PairedFlavors: []string{p},
			Score:         defaultPairingScore,
		})
	}
	return out
}

// combinationKey normalizes, dedupes and sorts flavors so that the same set
// always maps to the same key regardless of order.
func combinationKey(flavors []string) (string, []string) {
	seen := make(map[string]struct{}, len(flavors))
	sorted := make([]string, 0, len(flavors))
	for _, f := range flavors {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		sorted = append(sorted, f)
	}
	sort.Strings(sorted)
	return strings.Join(sorted, ","), sorted
}

func likedRatio(c entities.FlavorCombination) float64 {
	if c.Count == 0 {
		return 0
	}
	return float64(c.Liked) / float64(c.Count)
}

func toPreferencesResponse(prefs []entities.FlavorPreference) domain.FlavorPreferencesResponse {
	res := domain.FlavorPreferencesResponse{
		Likes:    []string{},
		Dislikes: []string{},
	}
	for _, p := range prefs {
		switch p.Preference {
		case entities.PreferenceLike:
			res.Likes = append(res.Likes, p.Flavor)
		case entities.PreferenceDislike:
			res.Dislikes = append(res.Dislikes, p.Flavor)
		}
	}
	return res
}
