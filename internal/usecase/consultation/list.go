package consultation

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// QUERIES
// ======================================================

func (e *Engine) Get(ctx context.Context, id uuid.UUID) (*dto.ConsultationView, error) {
	c, err := e.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("consultation")
	}

	view := dto.NewConsultationView(*c)
	return &view, nil
}

// Find returns the raw consultation, or (nil, nil) when absent.
func (e *Engine) Find(ctx context.Context, id uuid.UUID) (*models.Consultation, error) {
	return e.repo.FindByID(ctx, id)
}

func (e *Engine) ListByClient(
	ctx context.Context,
	clientID models.LinkID,
) ([]dto.ConsultationView, error) {

	list, err := e.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return dto.NewConsultationViews(list), nil
}

func (e *Engine) ListByProfessional(
	ctx context.Context,
	professionalID models.LinkID,
) ([]dto.ConsultationView, error) {

	list, err := e.repo.ListByProfessional(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	return dto.NewConsultationViews(list), nil
}

// ListAll is unrestricted; the HTTP layer keeps it admin-only.
func (e *Engine) ListAll(ctx context.Context) ([]dto.ConsultationView, error) {
	list, err := e.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewConsultationViews(list), nil
}
