package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	consultationdomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ConsultationRepository struct{ s *Store }

func (r *ConsultationRepository) Create(_ context.Context, c *models.Consultation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if err := r.s.checkConsultation(*c); err != nil {
		return err
	}

	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.consultations[c.ID] = strip(*c)
	return nil
}

func (r *ConsultationRepository) Update(_ context.Context, c *models.Consultation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.consultations[c.ID]; !ok {
		return domain.NotFound("consultation")
	}
	if err := r.s.checkConsultation(*c); err != nil {
		return err
	}

	c.UpdatedAt = time.Now()
	r.s.consultations[c.ID] = strip(*c)
	return nil
}

func (r *ConsultationRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.consultations[id]; !ok {
		return domain.NotFound("consultation")
	}
	delete(r.s.consultations, id)
	return nil
}

func (r *ConsultationRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Consultation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.consultations[id]
	if !ok {
		return nil, nil
	}
	c = r.s.hydrate(c)
	return &c, nil
}

func (r *ConsultationRepository) FindConflicts(
	_ context.Context,
	q consultationdomain.ConflictQuery,
) ([]models.Consultation, error) {

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.sortedConsultations(func(c models.Consultation) bool {
		if c.ProfessionalID != q.ProfessionalID || c.Status != models.ConsultationScheduled {
			return false
		}
		if q.ExcludeID != nil && c.ID == *q.ExcludeID {
			return false
		}
		if q.Duration <= 0 {
			return c.DateTime.Equal(q.Start)
		}
		length := time.Duration(r.s.treatments[c.TreatmentID].DurationMinutes) * time.Minute
		return consultationdomain.Overlaps(q.Start, q.Duration, c.DateTime, length)
	}), nil
}

func (r *ConsultationRepository) ListByClient(_ context.Context, clientID models.LinkID) ([]models.Consultation, error) {
	return r.list(func(c models.Consultation) bool { return c.ClientID == clientID }), nil
}

func (r *ConsultationRepository) ListByProfessional(_ context.Context, professionalID models.LinkID) ([]models.Consultation, error) {
	return r.list(func(c models.Consultation) bool { return c.ProfessionalID == professionalID }), nil
}

func (r *ConsultationRepository) ListAll(_ context.Context) ([]models.Consultation, error) {
	return r.list(func(models.Consultation) bool { return true }), nil
}

func (r *ConsultationRepository) ListScheduledBetween(
	_ context.Context,
	from time.Time,
	to time.Time,
) ([]models.Consultation, error) {
	return r.list(func(c models.Consultation) bool {
		return c.Status == models.ConsultationScheduled &&
			!c.DateTime.Before(from) &&
			c.DateTime.Before(to)
	}), nil
}

func (r *ConsultationRepository) list(keep func(models.Consultation) bool) []models.Consultation {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.sortedConsultations(keep)
}

// checkConsultation mirrors the foreign keys and the partial unique
// index on (professional_id, date_time) for SCHEDULED rows.
// caller holds the lock
func (s *Store) checkConsultation(c models.Consultation) error {
	if _, ok := s.links[models.RoleClient][c.ClientID]; !ok {
		return domain.NotFound("client")
	}
	if _, ok := s.links[models.RoleProfessional][c.ProfessionalID]; !ok {
		return domain.NotFound("professional")
	}
	if _, ok := s.treatments[c.TreatmentID]; !ok {
		return domain.NotFound("treatment")
	}

	if c.Status != models.ConsultationScheduled {
		return nil
	}
	for id, other := range s.consultations {
		if id != c.ID &&
			other.Status == models.ConsultationScheduled &&
			other.ProfessionalID == c.ProfessionalID &&
			other.DateTime.Equal(c.DateTime) {
			return domain.TimeConflict()
		}
	}
	return nil
}

func strip(c models.Consultation) models.Consultation {
	c.Client = models.Client{}
	c.Professional = models.Professional{}
	c.Treatment = models.Treatment{}
	return c
}

var _ consultationdomain.Repository = (*ConsultationRepository)(nil)
