package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	treatmentdomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/treatment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type TreatmentGormRepository struct {
	db *gorm.DB
}

func NewTreatmentGormRepository(db *gorm.DB) *TreatmentGormRepository {
	return &TreatmentGormRepository{db: db}
}

// Create stores the treatment and the join rows for any professional
// listed in t.Professionals. Professional rows themselves are never
// written from here.
func (r *TreatmentGormRepository) Create(ctx context.Context, t *models.Treatment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(t).Error; err != nil {
			return err
		}

		for _, p := range t.Professionals {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.TreatmentProfessional{TreatmentID: t.ID, ProfessionalID: p.ID}).Error; err != nil {
				return translate(err, nil, domain.NotFound("professional"))
			}
		}
		return nil
	})
}

func (r *TreatmentGormRepository) Update(ctx context.Context, t *models.Treatment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(t).Error
}

func (r *TreatmentGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Treatment{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, nil, domain.HasDependents("treatment"))
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("treatment")
	}
	return nil
}

func (r *TreatmentGormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Treatment, error) {
	var t models.Treatment
	err := r.db.WithContext(ctx).
		Preload("Professionals.User").
		Where("id = ?", id).
		Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TreatmentGormRepository) FindMany(ctx context.Context) ([]models.Treatment, error) {
	list := make([]models.Treatment, 0)
	if err := r.db.WithContext(ctx).
		Preload("Professionals.User").
		Order("name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *TreatmentGormRepository) FindByProfessional(
	ctx context.Context,
	professionalID models.LinkID,
) ([]models.Treatment, error) {

	list := make([]models.Treatment, 0)
	if err := r.db.WithContext(ctx).
		Preload("Professionals.User").
		Joins("JOIN treatment_professionals tp ON tp.treatment_id = treatments.id").
		Where("tp.professional_id = ?", professionalID).
		Order("treatments.name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// --------------------------------------------------
// Professional links
// --------------------------------------------------

func (r *TreatmentGormRepository) IsLinked(
	ctx context.Context,
	treatmentID uuid.UUID,
	professionalID models.LinkID,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TreatmentProfessional{}).
		Where("treatment_id = ? AND professional_id = ?", treatmentID, professionalID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Link is idempotent at the database level too.
func (r *TreatmentGormRepository) Link(
	ctx context.Context,
	treatmentID uuid.UUID,
	professionalID models.LinkID,
) error {

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.TreatmentProfessional{TreatmentID: treatmentID, ProfessionalID: professionalID}).Error
	return translate(err, nil, domain.NotFound("professional"))
}

func (r *TreatmentGormRepository) Unlink(
	ctx context.Context,
	treatmentID uuid.UUID,
	professionalID models.LinkID,
) error {
	return r.db.WithContext(ctx).
		Delete(&models.TreatmentProfessional{}, "treatment_id = ? AND professional_id = ?", treatmentID, professionalID).
		Error
}

func (r *TreatmentGormRepository) HasConsultations(ctx context.Context, treatmentID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Consultation{}).
		Where("treatment_id = ?", treatmentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ treatmentdomain.Repository = (*TreatmentGormRepository)(nil)
