package memory

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type StatisticsRepository struct{ s *Store }

func (r *StatisticsRepository) CountConsultations(_ context.Context, status models.ConsultationStatus) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, c := range r.s.consultations {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *StatisticsRepository) CountClients(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.links[models.RoleClient])), nil
}

func (r *StatisticsRepository) CountTreatments(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.treatments)), nil
}

func (r *StatisticsRepository) SumTreatmentPrice(_ context.Context, status models.ConsultationStatus) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var sum float64
	for _, c := range r.s.consultations {
		if c.Status == status {
			sum += r.s.treatments[c.TreatmentID].Price
		}
	}
	return sum, nil
}
