package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditEntry is one persisted audit-log row.
type AuditEntry struct {
	ID         string
	EventID    string
	EventType  string
	ActorID    *string
	ActorRole  *string
	Subject    string
	Payload    []byte
	OccurredAt time.Time
	CreatedAt  time.Time
}

// AuditRepository persists audit-log entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]*AuditEntry, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository constructs repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Create(ctx context.Context, entry *AuditEntry) error {
	const query = `
        INSERT INTO audit_log (event_id, event_type, actor_id, actor_role, subject, payload, occurred_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.EventID,
		entry.EventType,
		entry.ActorID,
		entry.ActorRole,
		entry.Subject,
		entry.Payload,
		entry.OccurredAt,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]*AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, event_id, event_type, actor_id, actor_role, subject, payload, occurred_at, created_at
        FROM audit_log ORDER BY occurred_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*AuditEntry
	for rows.Next() {
		var entry AuditEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.EventID,
			&entry.EventType,
			&entry.ActorID,
			&entry.ActorRole,
			&entry.Subject,
			&entry.Payload,
			&entry.OccurredAt,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
