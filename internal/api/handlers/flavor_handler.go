package handlers

import (
	"Pantrii-Backend/domain"
	"Pantrii-Backend/internal/api/presenters"
	"Pantrii-Backend/pkg/flavor"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FlavorHandler interface {
		GetCategories(c *fiber.Ctx) error
		DetectFlavors(c *fiber.Ctx) error
		GetPreferences(c *fiber.Ctx) error
		SetPreference(c *fiber.Ctx) error
		TrackCombination(c *fiber.Ctx) error
		RecommendCombinations(c *fiber.Ctx) error
		ResetCombinations(c *fiber.Ctx) error
	}

	flavorHandler struct {
		flavorService flavor.FlavorService
		validator     *validator.Validate
	}
)

func NewFlavorHandler(flavorService flavor.FlavorService, validator *validator.Validate) FlavorHandler {
	return &flavorHandler{
		flavorService: flavorService,
		validator:     validator,
	}
}

func (h *flavorHandler) GetCategories(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, h.flavorService.GetCategories(), fiber.StatusOK, domain.MessageSuccessGetFlavorCategories)
}

func (h *flavorHandler) DetectFlavors(c *fiber.Ctx) error {
	req := new(domain.DetectFlavorsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDetectFlavors, err)
	}

	return presenters.SuccessResponse(c, h.flavorService.DetectFlavors(*req), fiber.StatusOK, domain.MessageSuccessDetectFlavors)
}

func (h *flavorHandler) GetPreferences(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.flavorService.GetPreferences(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetPreferences, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPreferences)
}

func (h *flavorHandler) SetPreference(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SetFlavorPreferenceRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetPreference, err)
	}

	res, err := h.flavorService.SetPreference(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedSetPreference, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSetPreference)
}

func (h *flavorHandler) TrackCombination(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.TrackCombinationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedTrackCombination, err)
	}

	liked := true
	if req.Liked != nil {
		liked = *req.Liked
	}

	if err := h.flavorService.TrackCombination(c.Context(), req.Flavors, liked, userID); err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedTrackCombination, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessTrackCombination)
}

func (h *flavorHandler) RecommendCombinations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	base := c.Params("flavor")
	limit := c.QueryInt("limit", flavor.DefaultRecommendationLimit)

	res, err := h.flavorService.RecommendCombinations(c.Context(), base, limit, userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedRecommendCombination, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRecommendCombination)
}

func (h *flavorHandler) ResetCombinations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.flavorService.ResetCombinations(c.Context(), userID); err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedResetCombinations, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessResetCombinations)
}
