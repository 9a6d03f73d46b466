package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"parametric-service/internal/models"
	"parametric-service/internal/services"
	"parametric-service/internal/utils"

	"github.com/gofiber/fiber/v3"
)

type PolicyHandler struct {
	policyService      *services.PolicyService
	settlementService  *services.SettlementService
	eligibilityService *services.EligibilityService
}

func NewPolicyHandler(
	policyService *services.PolicyService,
	settlementService *services.SettlementService,
	eligibilityService *services.EligibilityService,
) *PolicyHandler {
	return &PolicyHandler{
		policyService:      policyService,
		settlementService:  settlementService,
		eligibilityService: eligibilityService,
	}
}

func (h *PolicyHandler) Register(app *fiber.App, operator fiber.Handler) {
	public := app.Group("insurance/api/v1")

	policies := public.Group("/policies")
	policies.Post("/", h.CreatePolicy)                            // POST /policies
	policies.Get("/count", h.GetTotalPolicies)                    // GET  /policies/count
	policies.Get("/holder/list", h.GetHolderPolicies)             // GET  /policies/holder/list
	policies.Get("/:id", h.GetPolicy)                             // GET  /policies/:id
	policies.Post("/:id/claim", h.Claim)                          // POST /policies/:id/claim
	policies.Post("/:id/dry-days/recompute", h.RecomputeDryDays)  // POST /policies/:id/dry-days/recompute
	policies.Get("/:id/eligibility", h.GetEligibility)            // GET  /policies/:id/eligibility

	public.Get("/customers/:id", h.GetCustomerInfo)

	protected := app.Group("insurance/protected/api/v1", operator)
	protected.Post("/policies/:id/deactivate", h.Deactivate)
}

// CreatePolicy purchases coverage for the authenticated holder.
func (h *PolicyHandler) CreatePolicy(c fiber.Ctx) error {
	holderID := c.Get("X-User-ID")
	if holderID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	var req models.CreatePolicyRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Failed to parse request body"))
	}

	id, err := h.policyService.CreatePolicy(c.Context(), holderID, req)
	if err != nil {
		slog.Error("Failed to create policy", "holder_id", holderID, "error", err)
		return serviceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(
		models.CreatePolicyResponse{PolicyID: id}))
}

func (h *PolicyHandler) GetPolicy(c fiber.Ctx) error {
	id, ok := parsePolicyID(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_ID", "Policy id must be an integer"))
	}

	policy, err := h.policyService.GetPolicy(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(policy))
}

func (h *PolicyHandler) GetTotalPolicies(c fiber.Ctx) error {
	count, err := h.policyService.GetTotalPolicies(c.Context())
	if err != nil {
		slog.Error("Failed to count policies", "error", err)
		return serviceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"total_policies": count,
	}))
}

func (h *PolicyHandler) GetHolderPolicies(c fiber.Ctx) error {
	holderID := c.Get("X-User-ID")
	if holderID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	policies, err := h.policyService.GetPoliciesByHolder(c.Context(), holderID)
	if err != nil {
		slog.Error("Failed to list holder policies", "holder_id", holderID, "error", err)
		return serviceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"policies":  policies,
		"count":     len(policies),
		"holder_id": holderID,
	}))
}

func (h *PolicyHandler) GetCustomerInfo(c fiber.Ctx) error {
	info, err := h.policyService.GetCustomerInfo(c.Context(), c.Params("id"))
	if err != nil {
		slog.Error("Failed to get customer info", "customer_id", c.Params("id"), "error", err)
		return serviceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(info))
}

// Claim runs the settlement core for the authenticated holder.
func (h *PolicyHandler) Claim(c fiber.Ctx) error {
	callerID := c.Get("X-User-ID")
	if callerID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	id, ok := parsePolicyID(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_ID", "Policy id must be an integer"))
	}

	result, err := h.settlementService.Claim(c.Context(), id, callerID)
	if err != nil {
		slog.Error("Claim rejected", "policy_id", id, "caller_id", callerID, "error", err)
		return serviceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(result))
}

// RecomputeDryDays is deliberately open to any caller: whoever wants a
// fresh counter pays the cost of the scan.
func (h *PolicyHandler) RecomputeDryDays(c fiber.Ctx) error {
	id, ok := parsePolicyID(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_ID", "Policy id must be an integer"))
	}

	days, err := h.eligibilityService.RecomputeDryDays(c.Context(), id)
	if err != nil {
		slog.Error("Failed to recompute dry days", "policy_id", id, "error", err)
		return serviceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(
		models.DryDaysResponse{PolicyID: id, ConsecutiveDryDays: days}))
}

func (h *PolicyHandler) GetEligibility(c fiber.Ctx) error {
	id, ok := parsePolicyID(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_ID", "Policy id must be an integer"))
	}

	policy, err := h.policyService.GetPolicy(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	eligible, err := h.eligibilityService.Evaluate(c.Context(), policy)
	if err != nil {
		slog.Error("Failed to evaluate eligibility", "policy_id", id, "error", err)
		return serviceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(
		models.EligibilityResponse{PolicyID: id, Kind: policy.Kind, Eligible: eligible}))
}

func (h *PolicyHandler) Deactivate(c fiber.Ctx) error {
	id, ok := parsePolicyID(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_ID", "Policy id must be an integer"))
	}

	if err := h.policyService.Deactivate(c.Context(), id); err != nil {
		slog.Error("Failed to deactivate policy", "policy_id", id, "error", err)
		return serviceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"policy_id": id,
		"is_active": false,
	}))
}

func parsePolicyID(c fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
