package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-records/internal/api/dto"
	"github.com/spec-kit/employee-records/internal/auth"
	"github.com/spec-kit/employee-records/internal/domain"
	"github.com/spec-kit/employee-records/internal/service"
	apperrors "github.com/spec-kit/employee-records/pkg/util"
)

// EmployeesHandler exposes employee CRUD endpoints.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employeeService}
}

// List handles GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.employees.ListEmployees(c.Context(), c.Query("department_id"))
	if err != nil {
		return err
	}

	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, employee := range employees {
		out = append(out, dto.NewEmployeeResponse(employee))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	employee, err := h.employees.GetEmployee(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(employee)})
}

// Create handles POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	employee, err := parseEmployeeRequest(c)
	if err != nil {
		return err
	}

	if err := h.employees.CreateEmployee(c.Context(), actorAccount(c), employee); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEmployeeResponse(employee)})
}

// Update handles PUT /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	employee, err := parseEmployeeRequest(c)
	if err != nil {
		return err
	}
	employee.ID = c.Params("id")

	if err := h.employees.UpdateEmployee(c.Context(), actorAccount(c), employee); err != nil {
		return err
	}

	updated, err := h.employees.GetEmployee(c.Context(), employee.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(updated)})
}

// Delete handles DELETE /employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	if err := h.employees.DeleteEmployee(c.Context(), actorAccount(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseEmployeeRequest(c *fiber.Ctx) (*domain.Employee, error) {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid hire_date, expected YYYY-MM-DD", nil)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return &domain.Employee{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
		JobTitle:     req.JobTitle,
		HireDate:     hireDate,
		Active:       active,
	}, nil
}

func actorAccount(c *fiber.Ctx) *domain.Account {
	if identity, ok := auth.IdentityFromContext(c); ok {
		return identity.Account
	}
	return nil
}
