package treatment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository interface {
	Create(ctx context.Context, t *models.Treatment) error
	Update(ctx context.Context, t *models.Treatment) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID preloads Professionals. Returns (nil, nil) when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Treatment, error)
	FindMany(ctx context.Context) ([]models.Treatment, error)
	FindByProfessional(ctx context.Context, professionalID models.LinkID) ([]models.Treatment, error)

	// -------- Professional links --------
	IsLinked(ctx context.Context, treatmentID uuid.UUID, professionalID models.LinkID) (bool, error)
	Link(ctx context.Context, treatmentID uuid.UUID, professionalID models.LinkID) error
	Unlink(ctx context.Context, treatmentID uuid.UUID, professionalID models.LinkID) error

	HasConsultations(ctx context.Context, treatmentID uuid.UUID) (bool, error)
}
