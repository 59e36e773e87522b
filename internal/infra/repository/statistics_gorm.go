package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type StatisticsGormRepository struct {
	db *gorm.DB
}

func NewStatisticsGormRepository(db *gorm.DB) *StatisticsGormRepository {
	return &StatisticsGormRepository{db: db}
}

func (r *StatisticsGormRepository) CountConsultations(
	ctx context.Context,
	status models.ConsultationStatus,
) (int64, error) {

	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Consultation{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

func (r *StatisticsGormRepository) CountClients(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Client{}).Count(&n).Error
	return n, err
}

func (r *StatisticsGormRepository) CountTreatments(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Treatment{}).Count(&n).Error
	return n, err
}

func (r *StatisticsGormRepository) SumTreatmentPrice(
	ctx context.Context,
	status models.ConsultationStatus,
) (float64, error) {

	var sum float64
	err := r.db.WithContext(ctx).
		Model(&models.Consultation{}).
		Select("COALESCE(SUM(t.price), 0)").
		Joins("JOIN treatments t ON t.id = consultations.treatment_id").
		Where("consultations.status = ?", status).
		Scan(&sum).Error
	return sum, err
}
