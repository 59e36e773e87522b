package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/inbox"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type NotificationRepository struct{ s *Store }

func (r *NotificationRepository) Create(_ context.Context, n *models.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now()
	r.s.notifications[n.ID] = *n
	return nil
}

func (r *NotificationRepository) ListByUser(_ context.Context, userID models.UserID) ([]models.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Notification, 0)
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *NotificationRepository) MarkViewed(_ context.Context, userID models.UserID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[id]
	if !ok || n.UserID != userID {
		return domain.NotFound("notification")
	}
	n.Viewed = true
	r.s.notifications[id] = n
	return nil
}

var _ inbox.Repository = (*NotificationRepository)(nil)
