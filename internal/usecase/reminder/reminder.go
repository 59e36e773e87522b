package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	consultationdomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/inbox"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// Mailer is satisfied by *notification.Dispatcher.
type Mailer interface {
	ConsultationReminder(ctx context.Context, m notification.ConsultationMail) error
}

type Report struct {
	Found  int
	Sent   int
	Failed int
}

// SendReminders mails every client with a SCHEDULED consultation on the
// next calendar day of the clinic's timezone and leaves an in-app
// notification for them.
type SendReminders struct {
	consultations consultationdomain.Repository
	inbox         inbox.Repository
	mailer        Mailer
	log           *zap.Logger

	timezone string
	now      func() time.Time
}

func NewSendReminders(
	consultations consultationdomain.Repository,
	inbox inbox.Repository,
	mailer Mailer,
	log *zap.Logger,
	tz string,
) *SendReminders {
	if log == nil {
		log = zap.NewNop()
	}
	return &SendReminders{
		consultations: consultations,
		inbox:         inbox,
		mailer:        mailer,
		log:           log,
		timezone:      tz,
		now:           time.Now,
	}
}

func (uc *SendReminders) Execute(ctx context.Context) (Report, error) {
	var report Report

	from, to := timezone.DayAfter(uc.now().In(timezone.Location(uc.timezone)))

	due, err := uc.consultations.ListScheduledBetween(ctx, from, to)
	if err != nil {
		return report, fmt.Errorf("listing tomorrow's consultations: %w", err)
	}
	report.Found = len(due)

	for i := range due {
		c := &due[i]
		log := uc.log.With(zap.String("consultation_id", c.ID.String()))

		if err := ctx.Err(); err != nil {
			return report, err
		}

		email := c.Client.User.Email
		if email == "" {
			log.Warn("reminder skipped: client without e-mail")
			report.Failed++
			continue
		}

		if err := uc.mailer.ConsultationReminder(ctx, notification.ConsultationMail{
			To:               email,
			ClientName:       c.Client.User.Name,
			ProfessionalName: c.Professional.User.Name,
			TreatmentName:    c.Treatment.Name,
			DateTime:         c.DateTime,
			Status:           c.Status,
		}); err != nil {
			log.Warn("reminder mail failed", zap.Error(err))
			report.Failed++
			continue
		}

		if err := uc.inbox.Create(ctx, &models.Notification{
			UserID:  c.Client.UserID,
			Message: "Lembrete de consulta enviado para " + email,
		}); err != nil {
			log.Warn("reminder notification not stored", zap.Error(err))
		}

		report.Sent++
	}

	uc.log.Info("reminders processed",
		zap.Int("found", report.Found),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}
