package statistics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Source is implemented by the gorm and in-memory statistics
// repositories.
type Source interface {
	CountConsultations(ctx context.Context, status models.ConsultationStatus) (int64, error)
	CountClients(ctx context.Context) (int64, error)
	CountTreatments(ctx context.Context) (int64, error)
	SumTreatmentPrice(ctx context.Context, status models.ConsultationStatus) (float64, error)
}

type Result struct {
	ScheduledConsultations int64   `json:"scheduled_consultations"`
	TotalClients           int64   `json:"total_clients"`
	TotalTreatments        int64   `json:"total_treatments"`
	PotentialRevenue       float64 `json:"potential_revenue"`
	TotalRevenue           float64 `json:"total_revenue"`
}

type GetStatistics struct {
	source Source
}

func NewGetStatistics(source Source) *GetStatistics {
	return &GetStatistics{source: source}
}

// Execute runs every aggregate concurrently. Potential revenue sums the
// treatment prices of SCHEDULED consultations; total revenue those of
// COMPLETED ones.
func (uc *GetStatistics) Execute(ctx context.Context) (*Result, error) {
	var out Result

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.ScheduledConsultations, err = uc.source.CountConsultations(ctx, models.ConsultationScheduled)
		return wrap("counting scheduled consultations", err)
	})
	g.Go(func() (err error) {
		out.TotalClients, err = uc.source.CountClients(ctx)
		return wrap("counting clients", err)
	})
	g.Go(func() (err error) {
		out.TotalTreatments, err = uc.source.CountTreatments(ctx)
		return wrap("counting treatments", err)
	})
	g.Go(func() (err error) {
		out.PotentialRevenue, err = uc.source.SumTreatmentPrice(ctx, models.ConsultationScheduled)
		return wrap("summing potential revenue", err)
	})
	g.Go(func() (err error) {
		out.TotalRevenue, err = uc.source.SumTreatmentPrice(ctx, models.ConsultationCompleted)
		return wrap("summing revenue", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", what, err)
}
