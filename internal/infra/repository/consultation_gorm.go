package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	consultationdomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ConsultationGormRepository struct {
	db *gorm.DB
}

func NewConsultationGormRepository(db *gorm.DB) *ConsultationGormRepository {
	return &ConsultationGormRepository{db: db}
}

func (r *ConsultationGormRepository) hydrated(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Client.User").
		Preload("Professional.User").
		Preload("Treatment")
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *ConsultationGormRepository) Create(ctx context.Context, c *models.Consultation) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
	return translate(err, domain.TimeConflict(), nil)
}

func (r *ConsultationGormRepository) Update(ctx context.Context, c *models.Consultation) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
	return translate(err, domain.TimeConflict(), nil)
}

func (r *ConsultationGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Consultation{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("consultation")
	}
	return nil
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *ConsultationGormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Consultation, error) {
	var c models.Consultation
	err := r.hydrated(ctx).Where("id = ?", id).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ConsultationGormRepository) FindConflicts(
	ctx context.Context,
	q consultationdomain.ConflictQuery,
) ([]models.Consultation, error) {

	db := r.db.WithContext(ctx).
		Model(&models.Consultation{}).
		Clauses(clause.Locking{
			Strength: "UPDATE",
			Table:    clause.Table{Name: "consultations"},
		}).
		Where("consultations.professional_id = ? AND consultations.status = ?",
			q.ProfessionalID, models.ConsultationScheduled)

	if q.ExcludeID != nil {
		db = db.Where("consultations.id <> ?", *q.ExcludeID)
	}

	if q.Duration <= 0 {
		db = db.Where("consultations.date_time = ?", q.Start)
	} else {
		db = db.
			Joins("JOIN treatments t ON t.id = consultations.treatment_id").
			Where(
				"consultations.date_time < ? AND consultations.date_time + make_interval(mins => t.duration_minutes) > ?",
				q.Start.Add(q.Duration),
				q.Start,
			)
	}

	list := make([]models.Consultation, 0)
	if err := db.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ConsultationGormRepository) ListByClient(
	ctx context.Context,
	clientID models.LinkID,
) ([]models.Consultation, error) {
	return r.list(ctx, "client_id = ?", clientID)
}

func (r *ConsultationGormRepository) ListByProfessional(
	ctx context.Context,
	professionalID models.LinkID,
) ([]models.Consultation, error) {
	return r.list(ctx, "professional_id = ?", professionalID)
}

func (r *ConsultationGormRepository) ListAll(ctx context.Context) ([]models.Consultation, error) {
	return r.list(ctx, "1 = 1")
}

func (r *ConsultationGormRepository) ListScheduledBetween(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Consultation, error) {
	return r.list(ctx,
		"status = ? AND date_time >= ? AND date_time < ?",
		models.ConsultationScheduled, from, to,
	)
}

func (r *ConsultationGormRepository) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]models.Consultation, error) {

	list := make([]models.Consultation, 0)
	if err := r.hydrated(ctx).
		Where(query, args...).
		Order("date_time ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

var _ consultationdomain.Repository = (*ConsultationGormRepository)(nil)
