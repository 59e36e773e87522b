package consultation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	consultationdomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// UpdateInput is partial: nil fields keep the stored value.
type UpdateInput struct {
	ClientID       *models.LinkID
	ProfessionalID *models.LinkID
	TreatmentID    *uuid.UUID
	DateTime       *time.Time
	Status         *string

	Actor *models.UserID
}

// ======================================================
// EXECUTE
// ======================================================

func (e *Engine) Update(
	ctx context.Context,
	id uuid.UUID,
	in UpdateInput,
) (c *models.Consultation, err error) {

	ctx, span := e.tracer.Start(ctx, "consultation.update")
	defer span.End()
	defer func() { e.observe("update", c, err) }()

	now := e.now()

	// --------------------------------------------------
	// 1️⃣ Consulta existente
	// --------------------------------------------------
	current, err := e.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.NotFound("consultation")
	}

	// --------------------------------------------------
	// 2️⃣ Estados terminais são imutáveis
	// --------------------------------------------------
	if err := consultationdomain.CanModify(current.Status); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Consulta passada só pode ser cancelada
	// --------------------------------------------------
	canceling := in.Status != nil && *in.Status == string(consultationdomain.StatusCanceled)
	if !canceling && !current.DateTime.After(now) {
		return nil, domain.InvalidDate("Não é possível alterar uma consulta passada.")
	}

	// --------------------------------------------------
	// 4️⃣ Nova data
	// --------------------------------------------------
	if in.DateTime != nil {
		if in.DateTime.Equal(current.DateTime) {
			return nil, domain.TimeConflict()
		}
		if !in.DateTime.After(now) {
			return nil, domain.InvalidDate("A data da consulta deve ser futura.")
		}
	}

	professionalID := current.ProfessionalID
	if in.ProfessionalID != nil {
		professionalID = *in.ProfessionalID
	}
	treatmentID := current.TreatmentID
	if in.TreatmentID != nil {
		treatmentID = *in.TreatmentID
	}
	dateTime := current.DateTime
	if in.DateTime != nil {
		dateTime = in.DateTime.UTC()
	}

	// --------------------------------------------------
	// 5️⃣ Conflito de horário (excluindo a própria consulta)
	// --------------------------------------------------
	leavesSchedule := in.Status != nil &&
		(*in.Status == string(consultationdomain.StatusCanceled) ||
			*in.Status == string(consultationdomain.StatusCompleted))

	if (in.DateTime != nil || in.ProfessionalID != nil) && !leavesSchedule {
		release, err := e.lockSlot(ctx, professionalID, dateTime)
		if err != nil {
			return nil, err
		}
		defer release()

		var duration time.Duration
		if e.mode == consultationdomain.ConflictInterval {
			t, err := e.treatments.Find(ctx, treatmentID)
			if err != nil {
				return nil, fmt.Errorf("finding treatment: %w", err)
			}
			// an unknown treatment is rejected below, with the other references
			if t != nil {
				duration = time.Duration(t.DurationMinutes) * time.Minute
			}
		}
		if err := e.assertSlotFree(ctx, professionalID, dateTime, duration, &current.ID); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 6️⃣ Referências informadas
	// --------------------------------------------------
	if in.ClientID != nil {
		if _, err := e.resolveLink(ctx, models.RoleClient, *in.ClientID, "client"); err != nil {
			return nil, err
		}
	}
	if in.ProfessionalID != nil {
		if _, err := e.resolveLink(ctx, models.RoleProfessional, *in.ProfessionalID, "professional"); err != nil {
			return nil, err
		}
	}
	if in.TreatmentID != nil {
		if _, err := e.resolveTreatment(ctx, *in.TreatmentID); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 7️⃣ Vínculo (sem vínculo automático na edição)
	// --------------------------------------------------
	if in.TreatmentID != nil || in.ProfessionalID != nil {
		linked, err := e.treatments.IsLinked(ctx, treatmentID, professionalID)
		if err != nil {
			return nil, err
		}
		if !linked {
			return nil, domain.ProfessionalNotLinked()
		}
	}

	// --------------------------------------------------
	// 8️⃣ Status
	// --------------------------------------------------
	status := current.Status
	if in.Status != nil {
		if status, err = consultationdomain.ParseStatus(*in.Status); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 9️⃣ Gravação
	// --------------------------------------------------
	next := &models.Consultation{
		ID:             current.ID,
		ClientID:       current.ClientID,
		ProfessionalID: professionalID,
		TreatmentID:    treatmentID,
		DateTime:       dateTime,
		Status:         status,
		CreatedAt:      current.CreatedAt,
	}
	if in.ClientID != nil {
		next.ClientID = *in.ClientID
	}
	if err := e.repo.Update(ctx, next); err != nil {
		return nil, err
	}

	c, err = e.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("consultation")
	}

	if err := e.notifier.ConsultationUpdated(ctx, mailFor(c)); err != nil {
		e.log.Warn("update mail failed",
			zap.String("consultation_id", c.ID.String()),
			zap.Error(err),
		)
	}

	e.audit.Dispatch(audit.Event{
		UserID:   in.Actor,
		Action:   "consultation_updated",
		Entity:   "consultation",
		EntityID: &c.ID,
		Metadata: map[string]any{
			"from_status": current.Status,
			"to_status":   c.Status,
		},
	})

	return c, nil
}
