package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-records/internal/api/dto"
	"github.com/spec-kit/employee-records/internal/domain"
	"github.com/spec-kit/employee-records/internal/service"
	apperrors "github.com/spec-kit/employee-records/pkg/util"
)

// LeavesHandler exposes the leave request workflow.
type LeavesHandler struct {
	leaves *service.LeaveService
}

// NewLeavesHandler constructs handler.
func NewLeavesHandler(leaveService *service.LeaveService) *LeavesHandler {
	return &LeavesHandler{leaves: leaveService}
}

// Submit handles POST /leaves.
func (h *LeavesHandler) Submit(c *fiber.Ctx) error {
	var req dto.LeaveSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.EmployeeID == "" {
		return apperrors.NewValidationError("employee_id required", nil)
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return apperrors.NewValidationError("invalid start_date, expected YYYY-MM-DD", nil)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return apperrors.NewValidationError("invalid end_date, expected YYYY-MM-DD", nil)
	}

	leave := &domain.LeaveRequest{
		EmployeeID: req.EmployeeID,
		Type:       domain.LeaveType(req.Type),
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
	}
	if err := h.leaves.Submit(c.Context(), actorAccount(c), leave); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewLeaveResponse(leave)})
}

// ListByEmployee handles GET /leaves?employee_id=...
func (h *LeavesHandler) ListByEmployee(c *fiber.Ctx) error {
	employeeID := c.Query("employee_id")
	if employeeID == "" {
		return apperrors.NewValidationError("employee_id query parameter required", nil)
	}

	leaves, err := h.leaves.ListByEmployee(c.Context(), employeeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leaveResponses(leaves)})
}

// ListPending handles GET /leaves/pending.
func (h *LeavesHandler) ListPending(c *fiber.Ctx) error {
	leaves, err := h.leaves.ListPending(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leaveResponses(leaves)})
}

// Decide handles POST /leaves/:id/decision.
func (h *LeavesHandler) Decide(c *fiber.Ctx) error {
	var req dto.LeaveDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	leave, err := h.leaves.Decide(c.Context(), actorAccount(c), c.Params("id"), req.Approve)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeaveResponse(leave)})
}

func leaveResponses(leaves []*domain.LeaveRequest) []dto.LeaveResponse {
	out := make([]dto.LeaveResponse, 0, len(leaves))
	for _, leave := range leaves {
		out = append(out, dto.NewLeaveResponse(leave))
	}
	return out
}
