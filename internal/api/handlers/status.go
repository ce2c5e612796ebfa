package handlers

import (
	"Pantrii-Backend/domain"
	"Pantrii-Backend/internal/utils/storage"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// errorStatus maps service errors to the HTTP status returned to clients.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrFoodItemNotFound),
		errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrBookmarkNotFound),
		errors.Is(err, domain.ErrMealNotFound),
		errors.Is(err, domain.ErrPlanEntryNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedAccess),
		errors.Is(err, domain.ErrUnauthorizedRecipeAccess),
		errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrEmailAlreadyUsed):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrRecipeSourceUnavailable):
		return fiber.StatusBadGateway
	case errors.Is(err, storage.ErrStorageNotReady):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusBadRequest
}
