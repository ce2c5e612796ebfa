package domain

import "errors"

var (
	MessageSuccessGetFlavorCategories  = "success get flavor categories"
	MessageSuccessDetectFlavors        = "success detect flavors"
	MessageSuccessGetPreferences       = "success get flavor preferences"
	MessageSuccessSetPreference        = "flavor preference saved"
	MessageSuccessTrackCombination     = "flavor combination tracked"
	MessageSuccessRecommendCombination = "success get flavor combinations"
	MessageSuccessResetCombinations    = "flavor combinations reset"

	MessageFailedDetectFlavors        = "failed to detect flavors"
	MessageFailedGetPreferences       = "failed to get flavor preferences"
	MessageFailedSetPreference        = "failed to save flavor preference"
	MessageFailedTrackCombination     = "failed to track flavor combination"
	MessageFailedRecommendCombination = "failed to get flavor combinations"
	MessageFailedResetCombinations    = "failed to reset flavor combinations"

	ErrUnknownFlavor     = errors.New("unknown flavor")
	ErrInvalidPreference = errors.New("preference must be like, dislike or neutral")
	ErrNotEnoughFlavors  = errors.New("a combination needs at least two flavors")
	ErrMissingBaseFlavor = errors.New("base flavor is required")
)

type (
	DetectFlavorsRequest struct {
		Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
		Max         int      `json:"max" validate:"omitempty,min=1,max=10"`
	}

	DetectFlavorsResponse struct {
		Flavors    []string           `json:"flavors"`
		Scores     map[string]float64 `json:"scores"`
		Confidence float64            `json:"confidence"`
		Suggested  []string           `json:"suggested"`
	}

	SetFlavorPreferenceRequest struct {
		Flavor     string `json:"flavor" validate:"required"`
		Preference string `json:"preference" validate:"required,oneof=like dislike neutral"`
	}

	FlavorPreferencesResponse struct {
		Likes    []string `json:"likes"`
		Dislikes []string `json:"dislikes"`
	}

	TrackCombinationRequest struct {
		Flavors []string `json:"flavors" validate:"required,min=2,dive,required"`
		Liked   *bool    `json:"liked"`
	}

	FlavorCombinationRecommendation struct {
		BaseFlavor    string   `json:"base_flavor"`
		PairedFlavors []string `json:"paired_flavors"`
		Score         float64  `json:"score"`
	}
)
