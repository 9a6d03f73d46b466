package handlers

import (
	"log/slog"
	"net/http"

	"parametric-service/internal/models"
	"parametric-service/internal/services"
	"parametric-service/internal/utils"

	"github.com/gofiber/fiber/v3"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) Register(app *fiber.App, operator fiber.Handler) {
	public := app.Group("insurance/api/v1")
	public.Get("/settings", h.GetSettings)

	protected := app.Group("insurance/protected/api/v1/settings", operator)
	protected.Put("/thresholds", h.SetThresholds)
	protected.Put("/compensation", h.SetCompensation)
}

func (h *SettingsHandler) GetSettings(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(h.settingsService.Get()))
}

func (h *SettingsHandler) SetThresholds(c fiber.Ctx) error {
	var req models.SetThresholdsRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Failed to parse request body"))
	}

	err := h.settingsService.SetThresholds(req.DelayThresholdHours, req.RainfallThresholdMM, req.ConsecutiveDaysThreshold)
	if err != nil {
		slog.Error("Failed to set thresholds", "error", err)
		return serviceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(h.settingsService.Get()))
}

func (h *SettingsHandler) SetCompensation(c fiber.Ctx) error {
	var req models.SetCompensationRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Failed to parse request body"))
	}

	if err := h.settingsService.SetCompensationAmount(req.Amount); err != nil {
		slog.Error("Failed to set compensation amount", "amount", req.Amount, "error", err)
		return serviceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(h.settingsService.Get()))
}
