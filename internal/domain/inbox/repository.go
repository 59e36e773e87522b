package inbox

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Repository stores in-app notifications shown to a user.
type Repository interface {
	Create(ctx context.Context, n *models.Notification) error

	// ListByUser returns newest first.
	ListByUser(ctx context.Context, userID models.UserID) ([]models.Notification, error)

	// MarkViewed returns NotFound("notification") when the id does not
	// belong to the user.
	MarkViewed(ctx context.Context, userID models.UserID, id uuid.UUID) error
}
