package handlers

import (
	"log/slog"
	"net/http"

	"parametric-service/internal/models"
	"parametric-service/internal/services"
	"parametric-service/internal/utils"

	"github.com/gofiber/fiber/v3"
)

type ObservationHandler struct {
	observationService *services.ObservationService
}

func NewObservationHandler(observationService *services.ObservationService) *ObservationHandler {
	return &ObservationHandler{observationService: observationService}
}

func (h *ObservationHandler) Register(app *fiber.App, operator fiber.Handler) {
	public := app.Group("insurance/api/v1/observations")
	public.Get("/delay", h.GetDelay)               // GET /observations/delay?flight_number=&flight_date=
	public.Get("/rainfall/:date", h.GetRainfall)   // GET /observations/rainfall/:date
	public.Get("/weather", h.GetAllWeatherData)    // GET /observations/weather

	protected := app.Group("insurance/protected/api/v1/observations", operator)
	protected.Post("/delay", h.RecordDelay)
	protected.Post("/rainfall", h.RecordRainfall)
}

func (h *ObservationHandler) RecordDelay(c fiber.Ctx) error {
	var req models.RecordDelayRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Failed to parse request body"))
	}

	err := h.observationService.RecordDelay(c.Context(), req.FlightNumber, req.FlightDate, req.DelayMinutes)
	if err != nil {
		slog.Error("Failed to record delay", "flight_number", req.FlightNumber, "error", err)
		return serviceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(req))
}

func (h *ObservationHandler) RecordRainfall(c fiber.Ctx) error {
	var req models.RecordRainfallRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Failed to parse request body"))
	}

	if err := h.observationService.RecordRainfall(c.Context(), req.Date, req.RainfallMM); err != nil {
		slog.Error("Failed to record rainfall", "date", req.Date, "error", err)
		return serviceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(req))
}

func (h *ObservationHandler) GetDelay(c fiber.Ctx) error {
	flightNumber := c.Query("flight_number")
	flightDate := c.Query("flight_date")
	if flightNumber == "" || flightDate == "" {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_SUBJECT", "flight_number and flight_date are required"))
	}

	minutes, err := h.observationService.GetDelay(c.Context(), flightNumber, flightDate)
	if err != nil {
		slog.Error("Failed to get delay", "flight_number", flightNumber, "error", err)
		return serviceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"flight_number": flightNumber,
		"flight_date":   flightDate,
		"delay_minutes": minutes,
	}))
}

func (h *ObservationHandler) GetRainfall(c fiber.Ctx) error {
	date := c.Params("date")
	mm, err := h.observationService.GetRainfall(c.Context(), date)
	if err != nil {
		slog.Error("Failed to get rainfall", "date", date, "error", err)
		return serviceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"date":        date,
		"rainfall_mm": mm,
	}))
}

func (h *ObservationHandler) GetAllWeatherData(c fiber.Ctx) error {
	entries, err := h.observationService.GetAllWeatherData(c.Context())
	if err != nil {
		slog.Error("Failed to list weather data", "error", err)
		return serviceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"entries": entries,
		"count":   len(entries),
	}))
}
