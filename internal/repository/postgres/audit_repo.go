package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"intervyo-backend/pkg/audit"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditEventRepository persists audit events to the audit_events table
type AuditEventRepository struct {
	db *pgxpool.Pool
}

func NewAuditEventRepository(db *pgxpool.Pool) *AuditEventRepository {
	return &AuditEventRepository{db: db}
}

// PersistEvent inserts one audit event
func (r *AuditEventRepository) PersistEvent(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO audit_events (
			event_type, service, environment, level,
			actor_id, subject_type, subject_id, ip_address,
			request_id, details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	detailsJSON := []byte("null")
	if len(event.Details) > 0 {
		if b, err := json.Marshal(event.Details); err == nil {
			detailsJSON = b
		}
	}

	// INET rejects empty strings
	var ipAddr any
	if event.IP != "" {
		ipAddr = event.IP
	}

	_, err := r.db.Exec(ctx, query,
		string(event.Event),
		event.Service,
		event.Environment,
		event.Level,
		event.ActorID,
		event.SubjectType,
		event.SubjectID,
		ipAddr,
		event.RequestID,
		detailsJSON,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to persist audit event: %w", err)
	}
	return nil
}

// PersistFunc adapts the repository for audit.Logger.SetPersistFunc
func (r *AuditEventRepository) PersistFunc() audit.PersistFunc {
	return r.PersistEvent
}
