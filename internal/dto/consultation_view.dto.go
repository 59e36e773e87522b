package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ConsultationView struct {
	ID               uuid.UUID                 `json:"id"`
	ClientID         models.LinkID             `json:"client_id"`
	ClientName       string                    `json:"client_name"`
	ProfessionalID   models.LinkID             `json:"professional_id"`
	ProfessionalName string                    `json:"professional_name"`
	TreatmentID      uuid.UUID                 `json:"treatment_id"`
	TreatmentName    string                    `json:"treatment_name"`
	DateTime         time.Time                 `json:"date_time"`
	Status           models.ConsultationStatus `json:"status"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

// NewConsultationView expects Client.User, Professional.User and
// Treatment to be loaded.
func NewConsultationView(c models.Consultation) ConsultationView {
	return ConsultationView{
		ID:               c.ID,
		ClientID:         c.ClientID,
		ClientName:       c.Client.User.Name,
		ProfessionalID:   c.ProfessionalID,
		ProfessionalName: c.Professional.User.Name,
		TreatmentID:      c.TreatmentID,
		TreatmentName:    c.Treatment.Name,
		DateTime:         c.DateTime.UTC(),
		Status:           c.Status,
		CreatedAt:        c.CreatedAt.UTC(),
		UpdatedAt:        c.UpdatedAt.UTC(),
	}
}

func NewConsultationViews(cs []models.Consultation) []ConsultationView {
	out := make([]ConsultationView, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewConsultationView(c))
	}
	return out
}
