package memory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AuditRepository struct{ s *Store }

func (r *AuditRepository) Log(_ context.Context, ev audit.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entry := models.AuditLog{
		ID:        uint(len(r.s.auditLogs) + 1),
		UserID:    ev.UserID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		CreatedAt: time.Now(),
	}
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			entry.Metadata = string(b)
		}
	}

	r.s.auditLogs = append(r.s.auditLogs, entry)
	return nil
}

func (r *AuditRepository) List(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	// appended in order, so walking backwards is newest first
	matched := make([]models.AuditLog, 0)
	for i := len(r.s.auditLogs) - 1; i >= 0; i-- {
		l := r.s.auditLogs[i]
		switch {
		case f.Action != "" && l.Action != f.Action:
		case f.Entity != "" && l.Entity != f.Entity:
		case f.From != nil && l.CreatedAt.Before(*f.From):
		case f.To != nil && !l.CreatedAt.Before(*f.To):
		default:
			matched = append(matched, l)
		}
	}

	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

var (
	_ audit.Sink   = (*AuditRepository)(nil)
	_ audit.Reader = (*AuditRepository)(nil)
)
