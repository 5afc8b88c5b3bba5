package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-records/internal/persistence"
	"github.com/spec-kit/employee-records/internal/repository"
)

const headcountCacheKey = "reports:headcount"

// ReportService aggregates HR reporting queries with a Redis cache in
// front of them.
type ReportService struct {
	employees repository.EmployeeRepository
	cache     *persistence.Redis
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewReportService builds the service.
func NewReportService(employees repository.EmployeeRepository, cache *persistence.Redis, cacheTTL time.Duration, logger *zap.Logger) *ReportService {
	return &ReportService{employees: employees, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Headcount returns per-department employee counts. Results are cached;
// cache failures fall back to the database.
func (s *ReportService) Headcount(ctx context.Context) ([]repository.HeadcountRow, error) {
	if cached, err := s.cache.GetCached(ctx, headcountCacheKey); err != nil {
		s.logger.Warn("headcount cache read failed", zap.Error(err))
	} else if cached != "" {
		var report []repository.HeadcountRow
		if err := json.Unmarshal([]byte(cached), &report); err == nil {
			return report, nil
		}
		s.logger.Warn("headcount cache entry corrupt; recomputing")
	}

	report, err := s.employees.HeadcountByDepartment(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheTTL > 0 {
		if encoded, err := json.Marshal(report); err == nil {
			if err := s.cache.SetCached(ctx, headcountCacheKey, string(encoded), s.cacheTTL); err != nil {
				s.logger.Warn("headcount cache write failed", zap.Error(err))
			}
		}
	}
	return report, nil
}
