package consultation

import (
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ===============================
// Consultation Status
// ===============================

type Status = models.ConsultationStatus

const (
	StatusScheduled = models.ConsultationScheduled
	StatusCanceled  = models.ConsultationCanceled
	StatusCompleted = models.ConsultationCompleted
)

// ParseStatus accepts only the three known values.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusScheduled, StatusCanceled, StatusCompleted:
		return st, nil
	}
	return "", domain.InvalidStatusTransition()
}

// ===============================
// Validations
// ===============================

// CanModify: only SCHEDULED consultations accept updates. CANCELED and
// COMPLETED are terminal.
func CanModify(current Status) error {
	if current != StatusScheduled {
		return domain.InvalidStatusTransition()
	}
	return nil
}

// InitialStatus is used when create omits a status.
func InitialStatus() Status {
	return StatusScheduled
}
