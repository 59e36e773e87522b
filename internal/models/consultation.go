package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsultationStatus string

const (
	ConsultationScheduled ConsultationStatus = "SCHEDULED"
	ConsultationCanceled  ConsultationStatus = "CANCELED"
	ConsultationCompleted ConsultationStatus = "COMPLETED"
)

type Consultation struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID LinkID `gorm:"type:uuid;index;not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ProfessionalID LinkID       `gorm:"type:uuid;index;not null" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	TreatmentID uuid.UUID `gorm:"type:uuid;index;not null" json:"treatment_id"`
	Treatment   Treatment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	DateTime time.Time          `gorm:"not null" json:"date_time"`
	Status   ConsultationStatus `gorm:"size:20;not null;default:'SCHEDULED'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Consultation) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
