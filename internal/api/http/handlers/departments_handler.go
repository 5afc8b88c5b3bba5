package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-records/internal/api/dto"
	"github.com/spec-kit/employee-records/internal/domain"
	"github.com/spec-kit/employee-records/internal/service"
	apperrors "github.com/spec-kit/employee-records/pkg/util"
)

// DepartmentsHandler exposes department CRUD endpoints.
type DepartmentsHandler struct {
	employees *service.EmployeeService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(employeeService *service.EmployeeService) *DepartmentsHandler {
	return &DepartmentsHandler{employees: employeeService}
}

// List handles GET /departments.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	departments, err := h.employees.ListDepartments(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		out = append(out, dto.NewDepartmentResponse(department))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /departments/:id.
func (h *DepartmentsHandler) Get(c *fiber.Ctx) error {
	department, err := h.employees.GetDepartment(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDepartmentResponse(department)})
}

// Create handles POST /departments.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	department, err := parseDepartmentRequest(c)
	if err != nil {
		return err
	}

	if err := h.employees.CreateDepartment(c.Context(), department); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewDepartmentResponse(department)})
}

// Update handles PUT /departments/:id.
func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	department, err := parseDepartmentRequest(c)
	if err != nil {
		return err
	}
	department.ID = c.Params("id")

	if err := h.employees.UpdateDepartment(c.Context(), department); err != nil {
		return err
	}

	updated, err := h.employees.GetDepartment(c.Context(), department.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDepartmentResponse(updated)})
}

// Delete handles DELETE /departments/:id.
func (h *DepartmentsHandler) Delete(c *fiber.Ctx) error {
	if err := h.employees.DeleteDepartment(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseDepartmentRequest(c *fiber.Ctx) (*domain.Department, error) {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return &domain.Department{
		Name:     req.Name,
		Location: req.Location,
		Active:   active,
	}, nil
}
