package consultation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ConflictQuery selects SCHEDULED consultations of one professional that
// collide with a candidate slot. A zero Duration means exact-instant
// matching on Start. A positive Duration means interval overlap, using
// each stored consultation's treatment duration as its length.
type ConflictQuery struct {
	ProfessionalID models.LinkID
	Start          time.Time
	Duration       time.Duration
	ExcludeID      *uuid.UUID
}

type Repository interface {
	// -------- Write --------
	Create(ctx context.Context, c *models.Consultation) error
	Update(ctx context.Context, c *models.Consultation) error
	Delete(ctx context.Context, id uuid.UUID) error

	// -------- Read --------
	FindByID(ctx context.Context, id uuid.UUID) (*models.Consultation, error)

	FindConflicts(
		ctx context.Context,
		q ConflictQuery,
	) ([]models.Consultation, error)

	// List* preload Client.User, Professional.User and Treatment,
	// ordered by DateTime ascending.
	ListByClient(ctx context.Context, clientID models.LinkID) ([]models.Consultation, error)
	ListByProfessional(ctx context.Context, professionalID models.LinkID) ([]models.Consultation, error)
	ListAll(ctx context.Context) ([]models.Consultation, error)

	ListScheduledBetween(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]models.Consultation, error)
}
