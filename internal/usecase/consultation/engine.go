package consultation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	consultationdomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
	"github.com/BruksfildServices01/clinic-scheduler/internal/tracing"
)

// ======================================================
// PORTS
// ======================================================

// Directory is satisfied by *identity.Registry. Lookups return
// (nil, nil) when absent.
type Directory interface {
	FindUserByID(ctx context.Context, id models.UserID) (*models.User, error)
	FindLinkByID(ctx context.Context, role models.Role, id models.LinkID) (*models.RoleLink, error)
}

// Treatments is satisfied by *treatment.Catalog.
type Treatments interface {
	Find(ctx context.Context, id uuid.UUID) (*models.Treatment, error)
	IsLinked(ctx context.Context, treatmentID uuid.UUID, professionalID models.LinkID) (bool, error)
	LinkProfessional(ctx context.Context, treatmentID uuid.UUID, professionalID models.LinkID) error
}

// Notifier is satisfied by *notification.Dispatcher.
type Notifier interface {
	ConsultationConfirmed(ctx context.Context, m notification.ConsultationMail) error
	ConsultationUpdated(ctx context.Context, m notification.ConsultationMail) error
	ConsultationCanceled(ctx context.Context, m notification.ConsultationMail) error
}

// SlotLocker serializes check-and-write for one professional slot across
// processes. The returned release func must always be called.
type SlotLocker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

type nopLocker struct{}

func (nopLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }

// ======================================================
// ENGINE
// ======================================================

type Engine struct {
	repo       consultationdomain.Repository
	people     Directory
	treatments Treatments
	notifier   Notifier
	audit      *audit.Dispatcher
	log        *zap.Logger

	locker  SlotLocker
	mode    consultationdomain.ConflictMode
	metrics *metrics.Collector
	tracer  trace.Tracer
	now     func() time.Time
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithSlotLocker(l SlotLocker) Option {
	return func(e *Engine) { e.locker = l }
}

func WithConflictMode(m consultationdomain.ConflictMode) Option {
	return func(e *Engine) { e.mode = m }
}

func WithMetrics(m *metrics.Collector) Option {
	return func(e *Engine) { e.metrics = m }
}

func NewEngine(
	repo consultationdomain.Repository,
	people Directory,
	treatments Treatments,
	notifier Notifier,
	audit *audit.Dispatcher,
	log *zap.Logger,
	opts ...Option,
) *Engine {
	e := &Engine{
		repo:       repo,
		people:     people,
		treatments: treatments,
		notifier:   notifier,
		audit:      audit,
		log:        log,
		locker:     nopLocker{},
		mode:       consultationdomain.ConflictExact,
		tracer:     tracing.Tracer("consultation"),
		now:        time.Now,
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ======================================================
// SHARED STEPS
// ======================================================

// resolveLink returns NotFound(resource) when the link or its user is
// missing.
func (e *Engine) resolveLink(
	ctx context.Context,
	role models.Role,
	id models.LinkID,
	resource string,
) (*models.User, error) {

	link, err := e.people.FindLinkByID(ctx, role, id)
	if err != nil {
		return nil, fmt.Errorf("finding %s: %w", resource, err)
	}
	if link == nil {
		return nil, domain.NotFound(resource)
	}

	user, err := e.people.FindUserByID(ctx, link.UserID)
	if err != nil {
		return nil, fmt.Errorf("finding %s user: %w", resource, err)
	}
	if user == nil {
		return nil, domain.NotFound(resource)
	}
	return user, nil
}

func (e *Engine) resolveTreatment(ctx context.Context, id uuid.UUID) (*models.Treatment, error) {
	t, err := e.treatments.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding treatment: %w", err)
	}
	if t == nil {
		return nil, domain.NotFound("treatment")
	}
	return t, nil
}

// assertSlotFree fails with TimeConflict when another SCHEDULED
// consultation of the professional collides with the slot.
func (e *Engine) assertSlotFree(
	ctx context.Context,
	professionalID models.LinkID,
	at time.Time,
	duration time.Duration,
	exclude *uuid.UUID,
) error {

	q := consultationdomain.ConflictQuery{
		ProfessionalID: professionalID,
		Start:          at,
		ExcludeID:      exclude,
	}
	if e.mode == consultationdomain.ConflictInterval {
		q.Duration = duration
	}

	conflicts, err := e.repo.FindConflicts(ctx, q)
	if err != nil {
		return fmt.Errorf("checking conflicts: %w", err)
	}
	if len(conflicts) > 0 {
		return domain.TimeConflict()
	}
	return nil
}

func (e *Engine) lockSlot(ctx context.Context, professionalID models.LinkID, at time.Time) (func(), error) {
	key := "slot:" + professionalID.String()
	if e.mode == consultationdomain.ConflictExact {
		key += ":" + at.UTC().Format(time.RFC3339)
	}

	release, err := e.locker.Lock(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("locking slot: %w", err)
	}
	return release, nil
}

func (e *Engine) observe(operation string, c *models.Consultation, err error) {
	if e.metrics == nil {
		return
	}
	if err != nil {
		kind := string(domain.KindOf(err))
		if kind == "" {
			kind = "internal"
		}
		e.metrics.SchedulingRejected.WithLabelValues(operation, kind).Inc()
		return
	}

	status := "deleted"
	if c != nil {
		status = string(c.Status)
	}
	e.metrics.ConsultationsTotal.WithLabelValues(operation, status).Inc()
}

func mailFor(c *models.Consultation) notification.ConsultationMail {
	return notification.ConsultationMail{
		To:               c.Client.User.Email,
		ClientName:       c.Client.User.Name,
		ProfessionalName: c.Professional.User.Name,
		TreatmentName:    c.Treatment.Name,
		DateTime:         c.DateTime,
		Status:           c.Status,
	}
}
