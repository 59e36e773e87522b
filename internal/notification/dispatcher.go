package notification

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ConsultationMail carries the denormalized data a consultation e-mail
// needs. To is the client's address.
type ConsultationMail struct {
	To               string
	ClientName       string
	ProfessionalName string
	TreatmentName    string
	DateTime         time.Time
	Status           models.ConsultationStatus
}

var statusLabels = map[models.ConsultationStatus]string{
	models.ConsultationScheduled: "remarcada",
	models.ConsultationCanceled:  "cancelada",
	models.ConsultationCompleted: "concluída",
}

// Dispatcher renders templates and hands them to a Sender. Every method
// returns the delivery error so callers can log it; none of them should
// ever fail a request.
type Dispatcher struct {
	sender   Sender
	timezone string
	sent     *prometheus.CounterVec
}

func NewDispatcher(sender Sender, tz string, sent *prometheus.CounterVec) *Dispatcher {
	return &Dispatcher{sender: sender, timezone: tz, sent: sent}
}

func (d *Dispatcher) ConsultationConfirmed(ctx context.Context, m ConsultationMail) error {
	return d.send(ctx, "confirmation", SubjectConfirmation, m.To, d.view("Confirmação de Consulta", m, ""))
}

func (d *Dispatcher) ConsultationUpdated(ctx context.Context, m ConsultationMail) error {
	v := d.view("Atualização de Consulta", m, statusLabels[m.Status])
	v.Scheduled = m.Status == models.ConsultationScheduled
	return d.send(ctx, "update", SubjectUpdate, m.To, v)
}

func (d *Dispatcher) ConsultationCanceled(ctx context.Context, m ConsultationMail) error {
	return d.send(ctx, "cancellation", SubjectCancellation, m.To, d.view("Consulta Cancelada", m, ""))
}

func (d *Dispatcher) ConsultationReminder(ctx context.Context, m ConsultationMail) error {
	return d.send(ctx, "reminder", SubjectReminder, m.To, d.view("Lembrete de Consulta", m, ""))
}

func (d *Dispatcher) Welcome(ctx context.Context, to, name string) error {
	return d.send(ctx, "welcome", SubjectWelcome, to, view{Title: "Bem-vindo!", ClientName: name})
}

func (d *Dispatcher) view(title string, m ConsultationMail, status string) view {
	return view{
		Title:            title,
		ClientName:       m.ClientName,
		ProfessionalName: m.ProfessionalName,
		TreatmentName:    m.TreatmentName,
		When:             timezone.Format(m.DateTime, d.timezone),
		StatusLabel:      status,
	}
}

func (d *Dispatcher) send(ctx context.Context, tmpl, subject, to string, v view) error {
	html, err := render(tmpl, v)
	if err == nil {
		err = d.sender.Send(ctx, to, subject, html)
	}

	if d.sent != nil {
		result := "ok"
		if err != nil {
			result = "error"
		}
		d.sent.WithLabelValues(tmpl, result).Inc()
	}
	return err
}
