package treatment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	treatmentdomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/treatment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	ProfessionalID  *models.LinkID
}

// UpdateInput is partial: nil fields are left unchanged.
type UpdateInput struct {
	Name            *string
	Description     *string
	DurationMinutes *int
	Price           *float64
}

// ProfessionalLookup is satisfied by *identity.Registry.
type ProfessionalLookup interface {
	FindLinkByID(ctx context.Context, role models.Role, id models.LinkID) (*models.RoleLink, error)
}

// ======================================================
// CATALOG
// ======================================================

type Catalog struct {
	repo   treatmentdomain.Repository
	people ProfessionalLookup
	audit  *audit.Dispatcher
}

func NewCatalog(
	repo treatmentdomain.Repository,
	people ProfessionalLookup,
	audit *audit.Dispatcher,
) *Catalog {
	return &Catalog{
		repo:   repo,
		people: people,
		audit:  audit,
	}
}

func (c *Catalog) Create(ctx context.Context, in CreateInput) (*models.Treatment, error) {
	name := strings.TrimSpace(in.Name)
	if err := treatmentdomain.ValidateName(name); err != nil {
		return nil, err
	}
	if err := treatmentdomain.ValidateDuration(in.DurationMinutes); err != nil {
		return nil, err
	}
	if err := treatmentdomain.ValidatePrice(in.Price); err != nil {
		return nil, err
	}

	t := &models.Treatment{
		Name:            name,
		Description:     in.Description,
		DurationMinutes: in.DurationMinutes,
		Price:           in.Price,
	}

	if in.ProfessionalID != nil {
		if err := c.requireProfessional(ctx, *in.ProfessionalID); err != nil {
			return nil, err
		}
		t.Professionals = []models.Professional{{ID: *in.ProfessionalID}}
	}

	if err := c.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	c.audit.Dispatch(audit.Event{
		Action:   "treatment_created",
		Entity:   "treatment",
		EntityID: &t.ID,
	})

	return c.Get(ctx, t.ID)
}

func (c *Catalog) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*models.Treatment, error) {
	t, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if err := treatmentdomain.ValidateName(name); err != nil {
			return nil, err
		}
		t.Name = name
	}
	if in.Description != nil {
		t.Description = in.Description
	}
	if in.DurationMinutes != nil {
		if err := treatmentdomain.ValidateDuration(*in.DurationMinutes); err != nil {
			return nil, err
		}
		t.DurationMinutes = *in.DurationMinutes
	}
	if in.Price != nil {
		if err := treatmentdomain.ValidatePrice(*in.Price); err != nil {
			return nil, err
		}
		t.Price = *in.Price
	}

	if err := c.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	c.audit.Dispatch(audit.Event{
		Action:   "treatment_updated",
		Entity:   "treatment",
		EntityID: &t.ID,
	})

	return t, nil
}

// Delete refuses while any consultation references the treatment.
func (c *Catalog) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := c.Get(ctx, id); err != nil {
		return err
	}

	busy, err := c.repo.HasConsultations(ctx, id)
	if err != nil {
		return err
	}
	if busy {
		return domain.HasDependents("treatment")
	}

	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}

	c.audit.Dispatch(audit.Event{
		Action:   "treatment_deleted",
		Entity:   "treatment",
		EntityID: &id,
	})
	return nil
}

// ------------------------------------------------------
// Queries
// ------------------------------------------------------

// Find returns (nil, nil) when absent.
func (c *Catalog) Find(ctx context.Context, id uuid.UUID) (*models.Treatment, error) {
	return c.repo.FindByID(ctx, id)
}

func (c *Catalog) Get(ctx context.Context, id uuid.UUID) (*models.Treatment, error) {
	t, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NotFound("treatment")
	}
	return t, nil
}

func (c *Catalog) FindMany(ctx context.Context) ([]models.Treatment, error) {
	return c.repo.FindMany(ctx)
}

func (c *Catalog) FindByProfessional(ctx context.Context, professionalID models.LinkID) ([]models.Treatment, error) {
	if err := c.requireProfessional(ctx, professionalID); err != nil {
		return nil, err
	}
	return c.repo.FindByProfessional(ctx, professionalID)
}

func (c *Catalog) IsLinked(ctx context.Context, treatmentID uuid.UUID, professionalID models.LinkID) (bool, error) {
	return c.repo.IsLinked(ctx, treatmentID, professionalID)
}

// ------------------------------------------------------
// Professional links
// ------------------------------------------------------

// LinkProfessional is idempotent.
func (c *Catalog) LinkProfessional(ctx context.Context, treatmentID uuid.UUID, professionalID models.LinkID) error {
	if _, err := c.Get(ctx, treatmentID); err != nil {
		return err
	}
	if err := c.requireProfessional(ctx, professionalID); err != nil {
		return err
	}

	linked, err := c.repo.IsLinked(ctx, treatmentID, professionalID)
	if err != nil {
		return err
	}
	if linked {
		return nil
	}

	return c.repo.Link(ctx, treatmentID, professionalID)
}

func (c *Catalog) UnlinkProfessional(ctx context.Context, treatmentID uuid.UUID, professionalID models.LinkID) error {
	if _, err := c.Get(ctx, treatmentID); err != nil {
		return err
	}
	if err := c.requireProfessional(ctx, professionalID); err != nil {
		return err
	}
	return c.repo.Unlink(ctx, treatmentID, professionalID)
}

func (c *Catalog) requireProfessional(ctx context.Context, id models.LinkID) error {
	link, err := c.people.FindLinkByID(ctx, models.RoleProfessional, id)
	if err != nil {
		return err
	}
	if link == nil {
		return domain.NotFound("professional")
	}
	return nil
}
