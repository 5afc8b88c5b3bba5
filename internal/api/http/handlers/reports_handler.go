package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-records/internal/service"
)

// ReportsHandler exposes aggregated HR reports.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reportService}
}

// Headcount handles GET /reports/headcount.
func (h *ReportsHandler) Headcount(c *fiber.Ctx) error {
	report, err := h.reports.Headcount(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}
