package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	treatmentdomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/treatment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type TreatmentRepository struct{ s *Store }

func (r *TreatmentRepository) Create(_ context.Context, t *models.Treatment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range t.Professionals {
		if _, ok := r.s.links[models.RoleProfessional][p.ID]; !ok {
			return domain.NotFound("professional")
		}
	}

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now

	stored := *t
	stored.Professionals = nil
	r.s.treatments[t.ID] = stored
	r.s.joins[t.ID] = make(map[models.LinkID]bool)
	for _, p := range t.Professionals {
		r.s.joins[t.ID][p.ID] = true
	}
	return nil
}

func (r *TreatmentRepository) Update(_ context.Context, t *models.Treatment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.treatments[t.ID]; !ok {
		return domain.NotFound("treatment")
	}
	t.UpdatedAt = time.Now()

	stored := *t
	stored.Professionals = nil
	r.s.treatments[t.ID] = stored
	return nil
}

func (r *TreatmentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.treatments[id]; !ok {
		return domain.NotFound("treatment")
	}
	if r.s.treatmentHasConsultations(id) {
		return domain.HasDependents("treatment")
	}

	delete(r.s.treatments, id)
	delete(r.s.joins, id)
	return nil
}

func (r *TreatmentRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Treatment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.treatments[id]
	if !ok {
		return nil, nil
	}
	t = r.s.withProfessionals(t)
	return &t, nil
}

func (r *TreatmentRepository) FindMany(_ context.Context) ([]models.Treatment, error) {
	return r.list(func(models.Treatment) bool { return true }), nil
}

func (r *TreatmentRepository) FindByProfessional(
	_ context.Context,
	professionalID models.LinkID,
) ([]models.Treatment, error) {
	return r.list(func(t models.Treatment) bool {
		return r.s.joins[t.ID][professionalID]
	}), nil
}

func (r *TreatmentRepository) list(keep func(models.Treatment) bool) []models.Treatment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Treatment, 0)
	for _, t := range r.s.treatments {
		if keep(t) {
			out = append(out, r.s.withProfessionals(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *TreatmentRepository) IsLinked(
	_ context.Context,
	treatmentID uuid.UUID,
	professionalID models.LinkID,
) (bool, error) {

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.joins[treatmentID][professionalID], nil
}

func (r *TreatmentRepository) Link(
	_ context.Context,
	treatmentID uuid.UUID,
	professionalID models.LinkID,
) error {

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.treatments[treatmentID]; !ok {
		return domain.NotFound("treatment")
	}
	if _, ok := r.s.links[models.RoleProfessional][professionalID]; !ok {
		return domain.NotFound("professional")
	}
	r.s.joins[treatmentID][professionalID] = true
	return nil
}

func (r *TreatmentRepository) Unlink(
	_ context.Context,
	treatmentID uuid.UUID,
	professionalID models.LinkID,
) error {

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if j, ok := r.s.joins[treatmentID]; ok {
		delete(j, professionalID)
	}
	return nil
}

func (r *TreatmentRepository) HasConsultations(_ context.Context, treatmentID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.treatmentHasConsultations(treatmentID), nil
}

// caller holds the lock
func (s *Store) treatmentHasConsultations(id uuid.UUID) bool {
	for _, c := range s.consultations {
		if c.TreatmentID == id {
			return true
		}
	}
	return false
}

// caller holds the lock
func (s *Store) withProfessionals(t models.Treatment) models.Treatment {
	t.Professionals = make([]models.Professional, 0, len(s.joins[t.ID]))
	for pid := range s.joins[t.ID] {
		l := s.links[models.RoleProfessional][pid]
		t.Professionals = append(t.Professionals, models.Professional{
			ID:     l.ID,
			UserID: l.UserID,
			User:   s.users[l.UserID],
		})
	}
	sort.Slice(t.Professionals, func(i, j int) bool {
		return t.Professionals[i].User.Name < t.Professionals[j].User.Name
	})
	return t
}

var _ treatmentdomain.Repository = (*TreatmentRepository)(nil)
