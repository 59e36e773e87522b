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

type CreateInput struct {
	ClientID       models.LinkID
	ProfessionalID models.LinkID
	TreatmentID    uuid.UUID
	DateTime       time.Time

	// Status defaults to SCHEDULED when empty.
	Status string

	// Actor is recorded in the audit trail only.
	Actor *models.UserID
}

// ======================================================
// EXECUTE
// ======================================================

func (e *Engine) Create(
	ctx context.Context,
	in CreateInput,
) (c *models.Consultation, err error) {

	ctx, span := e.tracer.Start(ctx, "consultation.create")
	defer span.End()
	defer func() { e.observe("create", c, err) }()

	// --------------------------------------------------
	// 1️⃣ Data no futuro
	// --------------------------------------------------
	if !in.DateTime.After(e.now()) {
		return nil, domain.InvalidDate("A data da consulta deve ser futura.")
	}

	status := consultationdomain.InitialStatus()
	if in.Status != "" {
		if status, err = consultationdomain.ParseStatus(in.Status); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 2️⃣ Cliente
	// --------------------------------------------------
	clientUser, err := e.resolveLink(ctx, models.RoleClient, in.ClientID, "client")
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Profissional
	// --------------------------------------------------
	professionalUser, err := e.resolveLink(ctx, models.RoleProfessional, in.ProfessionalID, "professional")
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Tratamento
	// --------------------------------------------------
	treatment, err := e.resolveTreatment(ctx, in.TreatmentID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Vínculo profissional ↔ tratamento (automático)
	// --------------------------------------------------
	linked, err := e.treatments.IsLinked(ctx, treatment.ID, in.ProfessionalID)
	if err != nil {
		return nil, fmt.Errorf("checking treatment link: %w", err)
	}
	if !linked {
		if err := e.treatments.LinkProfessional(ctx, treatment.ID, in.ProfessionalID); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 6️⃣ Conflito de horário + gravação
	// --------------------------------------------------
	release, err := e.lockSlot(ctx, in.ProfessionalID, in.DateTime)
	if err != nil {
		return nil, err
	}
	defer release()

	duration := time.Duration(treatment.DurationMinutes) * time.Minute
	if err := e.assertSlotFree(ctx, in.ProfessionalID, in.DateTime, duration, nil); err != nil {
		return nil, err
	}

	c = &models.Consultation{
		ClientID:       in.ClientID,
		ProfessionalID: in.ProfessionalID,
		TreatmentID:    treatment.ID,
		DateTime:       in.DateTime.UTC(),
		Status:         status,
	}
	if err := e.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	c.Client = models.Client{ID: in.ClientID, UserID: clientUser.ID, User: *clientUser}
	c.Professional = models.Professional{ID: in.ProfessionalID, UserID: professionalUser.ID, User: *professionalUser}
	c.Treatment = *treatment

	// --------------------------------------------------
	// 7️⃣ Confirmação por e-mail
	// --------------------------------------------------
	if c.Status == consultationdomain.StatusScheduled {
		if err := e.notifier.ConsultationConfirmed(ctx, mailFor(c)); err != nil {
			e.log.Warn("confirmation mail failed",
				zap.String("consultation_id", c.ID.String()),
				zap.Error(err),
			)
		}
	}

	// --------------------------------------------------
	// 8️⃣ Auditoria
	// --------------------------------------------------
	e.audit.Dispatch(audit.Event{
		UserID:   in.Actor,
		Action:   "consultation_created",
		Entity:   "consultation",
		EntityID: &c.ID,
		Metadata: map[string]any{
			"professional_id": c.ProfessionalID.String(),
			"date_time":       c.DateTime,
		},
	})

	return c, nil
}
