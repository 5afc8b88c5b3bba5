package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-records/internal/domain"
	"github.com/spec-kit/employee-records/internal/events"
	"github.com/spec-kit/employee-records/internal/repository"
)

// AuditService records security-relevant domain events in the audit log.
type AuditService struct {
	dispatcher events.Dispatcher
	audit      repository.AuditRepository
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, audit repository.AuditRepository, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, audit: audit, logger: logger}
}

// RegisterHandlers subscribes to every audited event type.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventAccountRegistered,
		events.EventLoginSucceeded,
		events.EventLoginFailed,
		events.EventPasswordChanged,
		events.EventEmployeeCreated,
		events.EventEmployeeUpdated,
		events.EventEmployeeDeleted,
		events.EventLeaveSubmitted,
		events.EventLeaveDecided,
	} {
		a.dispatcher.Subscribe(eventType, a.handleEvent)
	}
}

func (a *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		payload = nil
	}

	entry := &repository.AuditEntry{
		EventID:    event.ID,
		EventType:  string(event.Type),
		ActorID:    event.Actor.AccountID,
		ActorRole:  roleString(event.Actor.Role),
		Subject:    event.Subject,
		Payload:    payload,
		OccurredAt: event.Timestamp,
	}
	if err := a.audit.Create(ctx, entry); err != nil {
		// Audit persistence must not fail the originating request.
		a.logger.Error("audit write failed",
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
	}
	return nil
}

func roleString(role *domain.Role) *string {
	if role == nil {
		return nil
	}
	s := string(*role)
	return &s
}
