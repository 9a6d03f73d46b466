package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"parametric-service/internal/config"
	"parametric-service/internal/event"
	"parametric-service/internal/payout"
	"parametric-service/internal/repository"
	"parametric-service/internal/services"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "operator-secret"

func newTestApp() *fiber.App {
	cfg := config.InsuranceConfig{
		PremiumAmount:            100,
		CompensationAmount:       500,
		DelayThresholdHours:      2,
		RainfallThresholdMM:      5,
		ConsecutiveDaysThreshold: 3,
	}

	emitter := event.NewEmitter(event.NewLog())
	locks := services.NewLockTable()
	policies := repository.NewMemoryPolicyStore()
	customers := repository.NewMemoryCustomerStore()
	observations := repository.NewMemoryObservationStore()
	payouts := payout.NewRecorder()

	settingsService := services.NewSettingsService(cfg)
	poolService := services.NewPoolService(payouts, emitter, "operator")
	policyService := services.NewPolicyService(policies, customers, poolService, settingsService, emitter, locks)
	observationService := services.NewObservationService(observations, emitter)
	eligibilityService := services.NewEligibilityService(policies, observations, settingsService)
	settlementService := services.NewSettlementService(
		policies, customers, poolService, eligibilityService, settingsService,
		payouts, emitter, nil, locks)

	operator := RequireOperator(testAPIKey)
	app := fiber.New()
	NewPolicyHandler(policyService, settlementService, eligibilityService).Register(app, operator)
	NewObservationHandler(observationService).Register(app, operator)
	NewPoolHandler(poolService, emitter.Log()).Register(app, operator)
	NewSettingsHandler(settingsService).Register(app, operator)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreatePolicy_RequiresUserID(t *testing.T) {
	app := newTestApp()

	resp := doJSON(t, app, http.MethodPost, "/insurance/api/v1/policies", map[string]any{
		"kind":    "flight_delay",
		"payment": 100,
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOperatorRoutes_RejectMissingAPIKey(t *testing.T) {
	app := newTestApp()

	resp := doJSON(t, app, http.MethodPost, "/insurance/protected/api/v1/pool/fund",
		map[string]any{"amount": 100}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/insurance/protected/api/v1/pool/fund",
		map[string]any{"amount": 100}, map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestClaimFlow_EndToEnd(t *testing.T) {
	app := newTestApp()
	operatorHeaders := map[string]string{"X-API-Key": testAPIKey}

	resp := doJSON(t, app, http.MethodPost, "/insurance/protected/api/v1/pool/fund",
		map[string]any{"amount": 1000}, operatorHeaders)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/insurance/api/v1/policies", map[string]any{
		"kind":    "flight_delay",
		"payment": 100,
		"flight_subject": map[string]string{
			"flight_number": "VN123",
			"flight_date":   "2026-03-01",
		},
	}, map[string]string{"X-User-ID": "alice"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/insurance/protected/api/v1/observations/delay",
		map[string]any{
			"flight_number": "VN123",
			"flight_date":   "2026-03-01",
			"delay_minutes": 150,
		}, operatorHeaders)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/insurance/api/v1/policies/0/claim", nil,
		map[string]string{"X-User-ID": "alice"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A second claim conflicts.
	resp = doJSON(t, app, http.MethodPost, "/insurance/api/v1/policies/0/claim", nil,
		map[string]string{"X-User-ID": "alice"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestClaim_ByNonHolderIsForbidden(t *testing.T) {
	app := newTestApp()
	operatorHeaders := map[string]string{"X-API-Key": testAPIKey}

	doJSON(t, app, http.MethodPost, "/insurance/protected/api/v1/pool/fund",
		map[string]any{"amount": 1000}, operatorHeaders)
	doJSON(t, app, http.MethodPost, "/insurance/api/v1/policies", map[string]any{
		"kind":    "flight_delay",
		"payment": 100,
		"flight_subject": map[string]string{
			"flight_number": "VN123",
			"flight_date":   "2026-03-01",
		},
	}, map[string]string{"X-User-ID": "alice"})
	doJSON(t, app, http.MethodPost, "/insurance/protected/api/v1/observations/delay",
		map[string]any{
			"flight_number": "VN123",
			"flight_date":   "2026-03-01",
			"delay_minutes": 150,
		}, operatorHeaders)

	resp := doJSON(t, app, http.MethodPost, "/insurance/api/v1/policies/0/claim", nil,
		map[string]string{"X-User-ID": "mallory"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetPolicy_UnknownIDIs404(t *testing.T) {
	app := newTestApp()

	resp := doJSON(t, app, http.MethodGet, "/insurance/api/v1/policies/9", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
