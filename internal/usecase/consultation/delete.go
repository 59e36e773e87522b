package consultation

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Delete removes the consultation for good and mails the client a
// cancellation notice when both parties still resolve.
func (e *Engine) Delete(
	ctx context.Context,
	id uuid.UUID,
	actor *models.UserID,
) (err error) {

	ctx, span := e.tracer.Start(ctx, "consultation.delete")
	defer span.End()
	defer func() { e.observe("delete", nil, err) }()

	c, err := e.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NotFound("consultation")
	}

	// delete before mailing: a failed mail must never leave the row behind
	if err := e.repo.Delete(ctx, id); err != nil {
		return err
	}

	if c.Client.User.Email != "" && c.Professional.User.Name != "" {
		if err := e.notifier.ConsultationCanceled(ctx, mailFor(c)); err != nil {
			e.log.Warn("cancellation mail failed",
				zap.String("consultation_id", id.String()),
				zap.Error(err),
			)
		}
	}

	e.audit.Dispatch(audit.Event{
		UserID:   actor,
		Action:   "consultation_deleted",
		Entity:   "consultation",
		EntityID: &id,
	})

	return nil
}
