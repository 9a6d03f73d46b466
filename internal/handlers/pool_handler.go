package handlers

import (
	"log/slog"
	"net/http"

	"parametric-service/internal/event"
	"parametric-service/internal/models"
	"parametric-service/internal/services"
	"parametric-service/internal/utils"

	"github.com/gofiber/fiber/v3"
)

type PoolHandler struct {
	poolService *services.PoolService
	eventLog    *event.Log
}

func NewPoolHandler(poolService *services.PoolService, eventLog *event.Log) *PoolHandler {
	return &PoolHandler{poolService: poolService, eventLog: eventLog}
}

func (h *PoolHandler) Register(app *fiber.App, operator fiber.Handler) {
	public := app.Group("insurance/api/v1")
	public.Get("/pool/balance", h.GetBalance)
	public.Get("/events", h.GetEvents)

	protected := app.Group("insurance/protected/api/v1/pool", operator)
	protected.Post("/fund", h.Fund)
	protected.Post("/withdraw", h.Withdraw)
}

func (h *PoolHandler) GetBalance(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"balance": h.poolService.Balance(),
	}))
}

// GetEvents exposes the ordered audit log for external indexers.
func (h *PoolHandler) GetEvents(c fiber.Ctx) error {
	events := h.eventLog.Events()
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"events": events,
		"count":  len(events),
	}))
}

func (h *PoolHandler) Fund(c fiber.Ctx) error {
	var req models.FundRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Failed to parse request body"))
	}

	if err := h.poolService.Fund(c.Context(), req.Amount); err != nil {
		slog.Error("Failed to fund pool", "amount", req.Amount, "error", err)
		return serviceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"balance": h.poolService.Balance(),
	}))
}

func (h *PoolHandler) Withdraw(c fiber.Ctx) error {
	var req models.WithdrawRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Failed to parse request body"))
	}

	if err := h.poolService.Withdraw(c.Context(), req.Amount); err != nil {
		slog.Error("Failed to withdraw from pool", "amount", req.Amount, "error", err)
		return serviceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"balance": h.poolService.Balance(),
	}))
}
