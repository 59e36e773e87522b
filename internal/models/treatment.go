package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Treatment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	Description     *string `gorm:"size:255" json:"description"`
	DurationMinutes int     `gorm:"not null" json:"duration_minutes"`
	Price           float64 `gorm:"not null" json:"price"`

	Professionals []Professional `gorm:"many2many:treatment_professionals;constraint:OnDelete:CASCADE;" json:"professionals,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Treatment) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TreatmentProfessional is the join row behind Treatment.Professionals.
type TreatmentProfessional struct {
	TreatmentID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProfessionalID LinkID    `gorm:"type:uuid;primaryKey"`
}

func (TreatmentProfessional) TableName() string { return "treatment_professionals" }
