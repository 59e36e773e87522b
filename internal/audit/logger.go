package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Counter is satisfied by a prometheus counter.
type Counter interface {
	Inc()
}

// Logger is the gorm-backed Sink.
type Logger struct {
	db      *gorm.DB
	written Counter
}

func New(db *gorm.DB, written Counter) *Logger {
	return &Logger{db: db, written: written}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	if err := l.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return err
	}
	if l.written != nil {
		l.written.Inc()
	}
	return nil
}

// Filter narrows a listing. Zero fields match everything.
type Filter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Offset int
	Limit  int
}

// Reader lists persisted entries, newest first.
type Reader interface {
	List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	q := l.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting audit logs: %w", err)
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {

		return nil, 0, fmt.Errorf("listing audit logs: %w", err)
	}

	return logs, total, nil
}

var (
	_ Sink   = (*Logger)(nil)
	_ Reader = (*Logger)(nil)
)
