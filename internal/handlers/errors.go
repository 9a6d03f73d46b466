package handlers

import (
	"errors"
	"net/http"

	"parametric-service/internal/models"
	"parametric-service/internal/utils"

	"github.com/gofiber/fiber/v3"
)

// serviceError maps the service failure kinds onto HTTP responses. Anything
// unmatched is a 500.
func serviceError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(
			utils.CreateErrorResponse("NOT_FOUND", "Policy not found"))
	case errors.Is(err, models.ErrUnauthorized):
		return c.Status(http.StatusForbidden).JSON(
			utils.CreateErrorResponse("FORBIDDEN", "Caller is not the policy holder"))
	case errors.Is(err, models.ErrInvalidPayment):
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_PAYMENT", err.Error()))
	case errors.Is(err, models.ErrInvalidSubject):
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_SUBJECT", err.Error()))
	case errors.Is(err, models.ErrPolicyInactive):
		return c.Status(http.StatusConflict).JSON(
			utils.CreateErrorResponse("POLICY_INACTIVE", "Policy is not active"))
	case errors.Is(err, models.ErrAlreadyClaimed):
		return c.Status(http.StatusConflict).JSON(
			utils.CreateErrorResponse("ALREADY_CLAIMED", "Policy has already been claimed"))
	case errors.Is(err, models.ErrThresholdNotMet):
		return c.Status(http.StatusConflict).JSON(
			utils.CreateErrorResponse("THRESHOLD_NOT_MET", "Policy is not eligible for a claim"))
	case errors.Is(err, models.ErrInsufficientPool):
		return c.Status(http.StatusConflict).JSON(
			utils.CreateErrorResponse("INSUFFICIENT_POOL", "Pool balance cannot cover the amount"))
	case errors.Is(err, models.ErrPayoutFailed):
		return c.Status(http.StatusBadGateway).JSON(
			utils.CreateErrorResponse("PAYOUT_FAILED", "Value transfer failed; no state was changed"))
	default:
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("INTERNAL_ERROR", "Unexpected failure"))
	}
}
