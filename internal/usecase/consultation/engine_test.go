package consultation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	consultationdomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/treatment"
)

// ======================================================
// FAKES
// ======================================================

type recordingNotifier struct {
	mu        sync.Mutex
	confirmed []notification.ConsultationMail
	updated   []notification.ConsultationMail
	canceled  []notification.ConsultationMail
	err       error
}

func (n *recordingNotifier) ConsultationConfirmed(_ context.Context, m notification.ConsultationMail) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, m)
	return n.err
}

func (n *recordingNotifier) ConsultationUpdated(_ context.Context, m notification.ConsultationMail) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updated = append(n.updated, m)
	return n.err
}

func (n *recordingNotifier) ConsultationCanceled(_ context.Context, m notification.ConsultationMail) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.canceled = append(n.canceled, m)
	return n.err
}

type countingLocker struct {
	locks, releases int
}

func (l *countingLocker) Lock(context.Context, string) (func(), error) {
	l.locks++
	return func() { l.releases++ }, nil
}

// failingFind breaks treatment lookups and delegates the rest.
type failingFind struct {
	Treatments
	err error
}

func (f failingFind) Find(context.Context, uuid.UUID) (*models.Treatment, error) {
	return nil, f.err
}

// ======================================================
// FIXTURE
// ======================================================

type fixture struct {
	t        *testing.T
	ctx      context.Context
	now      time.Time
	store    *memory.Store
	registry *identity.Registry
	catalog  *treatment.Catalog
	engine   *Engine
	notifier *recordingNotifier

	client       models.LinkID
	professional models.LinkID
	cleaning     uuid.UUID
}

var fixtureNow = time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	f := &fixture{
		t:        t,
		ctx:      context.Background(),
		now:      fixtureNow,
		store:    memory.New(),
		notifier: &recordingNotifier{},
	}

	f.registry = identity.NewRegistry(f.store.Users(), nil, nil, identity.WithPasswordCost(bcrypt.MinCost))
	f.catalog = treatment.NewCatalog(f.store.Treatments(), f.registry, nil)

	opts = append([]Option{WithClock(func() time.Time { return f.now })}, opts...)
	f.engine = NewEngine(
		f.store.Consultations(),
		f.registry,
		f.catalog,
		f.notifier,
		nil,
		nil,
		opts...,
	)

	f.client = f.member("Ana Cliente", models.RoleClient)
	f.professional = f.member("Dra. Beatriz", models.RoleProfessional)
	f.cleaning = f.treatment("Limpeza", 30)
	return f
}

var cpfSeq int

func (f *fixture) member(name string, role models.Role) models.LinkID {
	f.t.Helper()

	cpfSeq++
	_, link, err := f.registry.CreateUser(f.ctx, identity.Profile{
		Name:     name,
		Email:    fmt.Sprintf("user%d@odonto.com.br", cpfSeq),
		CPF:      fmt.Sprintf("%011d", cpfSeq),
		Password: "Senha@123",
		Role:     role,
	})
	if err != nil {
		f.t.Fatalf("creating %s: %v", name, err)
	}
	return link.ID
}

func (f *fixture) treatment(name string, minutes int) uuid.UUID {
	f.t.Helper()

	tr, err := f.catalog.Create(f.ctx, treatment.CreateInput{
		Name:            name,
		DurationMinutes: minutes,
		Price:           150,
	})
	if err != nil {
		f.t.Fatalf("creating treatment %s: %v", name, err)
	}
	return tr.ID
}

func (f *fixture) schedule(at time.Time) *models.Consultation {
	f.t.Helper()

	c, err := f.engine.Create(f.ctx, CreateInput{
		ClientID:       f.client,
		ProfessionalID: f.professional,
		TreatmentID:    f.cleaning,
		DateTime:       at,
	})
	if err != nil {
		f.t.Fatalf("Create(%s): %v", at, err)
	}
	return c
}

func notFound(resource string) error {
	return &domain.Error{Kind: domain.KindNotFound, Resource: resource}
}

func ptr[T any](v T) *T { return &v }

// ======================================================
// CREATE
// ======================================================

func TestCreateSchedulesAndConfirms(t *testing.T) {
	f := newFixture(t)
	at := f.now.Add(24 * time.Hour)

	c := f.schedule(at)

	if c.Status != consultationdomain.StatusScheduled {
		t.Fatalf("status = %s, want SCHEDULED", c.Status)
	}
	if !c.DateTime.Equal(at) {
		t.Fatalf("date_time = %s, want %s", c.DateTime, at)
	}
	if len(f.notifier.confirmed) != 1 {
		t.Fatalf("confirmations = %d, want 1", len(f.notifier.confirmed))
	}
	mail := f.notifier.confirmed[0]
	if mail.ClientName != "Ana Cliente" || mail.ProfessionalName != "Dra. Beatriz" || mail.TreatmentName != "Limpeza" {
		t.Fatalf("unexpected mail %+v", mail)
	}

	linked, err := f.catalog.IsLinked(f.ctx, f.cleaning, f.professional)
	if err != nil || !linked {
		t.Fatalf("professional should be auto-linked, linked=%v err=%v", linked, err)
	}
}

func TestCreateRejectsNonFutureDate(t *testing.T) {
	f := newFixture(t)

	for _, at := range []time.Time{f.now, f.now.Add(-time.Minute)} {
		_, err := f.engine.Create(f.ctx, CreateInput{
			ClientID:       f.client,
			ProfessionalID: f.professional,
			TreatmentID:    f.cleaning,
			DateTime:       at,
		})
		if !errors.Is(err, domain.ErrInvalidDate) {
			t.Fatalf("Create(%s) err = %v, want InvalidDate", at, err)
		}
	}

	if len(f.notifier.confirmed) != 0 {
		t.Fatalf("no mail expected, got %d", len(f.notifier.confirmed))
	}
}

func TestCreateMissingReferences(t *testing.T) {
	f := newFixture(t)
	at := f.now.Add(time.Hour)

	tests := []struct {
		name string
		in   CreateInput
		want error
	}{
		{
			name: "client",
			in:   CreateInput{ClientID: models.NewLinkID(), ProfessionalID: f.professional, TreatmentID: f.cleaning, DateTime: at},
			want: notFound("client"),
		},
		{
			name: "professional",
			in:   CreateInput{ClientID: f.client, ProfessionalID: models.NewLinkID(), TreatmentID: f.cleaning, DateTime: at},
			want: notFound("professional"),
		},
		{
			name: "client link used as professional",
			in:   CreateInput{ClientID: f.client, ProfessionalID: f.client, TreatmentID: f.cleaning, DateTime: at},
			want: notFound("professional"),
		},
		{
			name: "treatment",
			in:   CreateInput{ClientID: f.client, ProfessionalID: f.professional, TreatmentID: uuid.New(), DateTime: at},
			want: notFound("treatment"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.Create(f.ctx, tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Create(f.ctx, CreateInput{
		ClientID:       f.client,
		ProfessionalID: f.professional,
		TreatmentID:    f.cleaning,
		DateTime:       f.now.Add(time.Hour),
		Status:         "PENDING",
	})
	if !errors.Is(err, domain.ErrInvalidStatusTransition) {
		t.Fatalf("err = %v, want InvalidStatusTransition", err)
	}
}

func TestCreateCompletedSkipsConfirmation(t *testing.T) {
	f := newFixture(t)

	c, err := f.engine.Create(f.ctx, CreateInput{
		ClientID:       f.client,
		ProfessionalID: f.professional,
		TreatmentID:    f.cleaning,
		DateTime:       f.now.Add(time.Hour),
		Status:         "COMPLETED",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Status != consultationdomain.StatusCompleted {
		t.Fatalf("status = %s", c.Status)
	}
	if len(f.notifier.confirmed) != 0 {
		t.Fatalf("confirmations = %d, want 0", len(f.notifier.confirmed))
	}
}

func TestCreateConflictsOnSameInstant(t *testing.T) {
	f := newFixture(t)
	at := f.now.Add(48 * time.Hour)
	f.schedule(at)

	_, err := f.engine.Create(f.ctx, CreateInput{
		ClientID:       f.member("Outro Cliente", models.RoleClient),
		ProfessionalID: f.professional,
		TreatmentID:    f.cleaning,
		DateTime:       at,
	})
	if !errors.Is(err, domain.ErrTimeConflict) {
		t.Fatalf("err = %v, want TimeConflict", err)
	}

	// another professional at the same instant is fine
	other := f.member("Dr. Carlos", models.RoleProfessional)
	if _, err := f.engine.Create(f.ctx, CreateInput{
		ClientID:       f.client,
		ProfessionalID: other,
		TreatmentID:    f.cleaning,
		DateTime:       at,
	}); err != nil {
		t.Fatalf("other professional: %v", err)
	}

	// exact mode ignores overlap
	if _, err := f.engine.Create(f.ctx, CreateInput{
		ClientID:       f.client,
		ProfessionalID: f.professional,
		TreatmentID:    f.cleaning,
		DateTime:       at.Add(10 * time.Minute),
	}); err != nil {
		t.Fatalf("overlapping instant in exact mode: %v", err)
	}
}

func TestCreateAutoLinksOnce(t *testing.T) {
	f := newFixture(t)
	whitening := f.treatment("Clareamento", 45)

	for i := 0; i < 3; i++ {
		if _, err := f.engine.Create(f.ctx, CreateInput{
			ClientID:       f.client,
			ProfessionalID: f.professional,
			TreatmentID:    whitening,
			DateTime:       f.now.Add(time.Duration(24+i) * time.Hour),
		}); err != nil {
			t.Fatalf("Create #%d: %v", i+1, err)
		}
	}

	offered, err := f.catalog.FindByProfessional(f.ctx, f.professional)
	if err != nil {
		t.Fatalf("FindByProfessional: %v", err)
	}
	if len(offered) != 1 || offered[0].ID != whitening {
		t.Fatalf("professional offers %d treatments, want only Clareamento", len(offered))
	}

	tr, err := f.catalog.Get(f.ctx, whitening)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(tr.Professionals) != 1 || tr.Professionals[0].ID != f.professional {
		t.Fatalf("treatment has %d professionals, want 1", len(tr.Professionals))
	}
}

func TestCreateCountsWritesAndRejections(t *testing.T) {
	m := metrics.NewCollectorWith(prometheus.NewRegistry(), "test")
	f := newFixture(t, WithMetrics(m))
	at := f.now.Add(48 * time.Hour)

	f.schedule(at)
	_, err := f.engine.Create(f.ctx, CreateInput{
		ClientID:       f.client,
		ProfessionalID: f.professional,
		TreatmentID:    f.cleaning,
		DateTime:       at,
	})
	if !errors.Is(err, domain.ErrTimeConflict) {
		t.Fatalf("err = %v, want TimeConflict", err)
	}

	if got := testutil.ToFloat64(m.ConsultationsTotal.WithLabelValues("create", "SCHEDULED")); got != 1 {
		t.Errorf("created = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.SchedulingRejected.WithLabelValues("create", "time_conflict")); got != 1 {
		t.Errorf("rejected = %v, want 1", got)
	}
}

func TestCreateIntervalModeRejectsOverlap(t *testing.T) {
	f := newFixture(t, WithConflictMode(consultationdomain.ConflictInterval))
	at := f.now.Add(48 * time.Hour)
	f.schedule(at)

	_, err := f.engine.Create(f.ctx, CreateInput{
		ClientID:       f.client,
		ProfessionalID: f.professional,
		TreatmentID:    f.cleaning,
		DateTime:       at.Add(10 * time.Minute),
	})
	if !errors.Is(err, domain.ErrTimeConflict) {
		t.Fatalf("err = %v, want TimeConflict", err)
	}

	if _, err := f.engine.Create(f.ctx, CreateInput{
		ClientID:       f.client,
		ProfessionalID: f.professional,
		TreatmentID:    f.cleaning,
		DateTime:       at.Add(30 * time.Minute),
	}); err != nil {
		t.Fatalf("back-to-back slot: %v", err)
	}
}

func TestCreateCanceledSlotIsFree(t *testing.T) {
	f := newFixture(t)
	at := f.now.Add(24 * time.Hour)
	c := f.schedule(at)

	if _, err := f.engine.Update(f.ctx, c.ID, UpdateInput{Status: ptr("CANCELED")}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	f.schedule(at)
}

func TestCreateMailFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("smtp down")

	c := f.schedule(f.now.Add(time.Hour))

	stored, err := f.engine.Find(f.ctx, c.ID)
	if err != nil || stored == nil {
		t.Fatalf("consultation should be stored, got %v %v", stored, err)
	}
}

func TestCreateReleasesSlotLock(t *testing.T) {
	locker := &countingLocker{}
	f := newFixture(t, WithSlotLocker(locker))
	at := f.now.Add(time.Hour)

	f.schedule(at)
	_, _ = f.engine.Create(f.ctx, CreateInput{
		ClientID:       f.client,
		ProfessionalID: f.professional,
		TreatmentID:    f.cleaning,
		DateTime:       at,
	})

	if locker.locks != 2 || locker.releases != 2 {
		t.Fatalf("locks=%d releases=%d, want 2/2", locker.locks, locker.releases)
	}
}

// ======================================================
// UPDATE
// ======================================================

func TestUpdateMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Update(f.ctx, uuid.New(), UpdateInput{Status: ptr("CANCELED")})
	if !errors.Is(err, notFound("consultation")) {
		t.Fatalf("err = %v, want NotFound(consultation)", err)
	}
}

func TestUpdateTerminalStatesAreImmutable(t *testing.T) {
	for _, terminal := range []string{"CANCELED", "COMPLETED"} {
		t.Run(terminal, func(t *testing.T) {
			f := newFixture(t)
			c := f.schedule(f.now.Add(24 * time.Hour))

			if _, err := f.engine.Update(f.ctx, c.ID, UpdateInput{Status: ptr(terminal)}); err != nil {
				t.Fatalf("first transition: %v", err)
			}

			for _, next := range []string{"SCHEDULED", "CANCELED", "COMPLETED"} {
				_, err := f.engine.Update(f.ctx, c.ID, UpdateInput{Status: ptr(next)})
				if !errors.Is(err, domain.ErrInvalidStatusTransition) {
					t.Fatalf("%s -> %s err = %v, want InvalidStatusTransition", terminal, next, err)
				}
			}
		})
	}
}

func TestUpdatePastConsultationOnlyCancels(t *testing.T) {
	f := newFixture(t)
	c := f.schedule(f.now.Add(time.Hour))

	f.now = f.now.Add(2 * time.Hour)

	_, err := f.engine.Update(f.ctx, c.ID, UpdateInput{Status: ptr("COMPLETED")})
	if !errors.Is(err, domain.ErrInvalidDate) {
		t.Fatalf("complete past err = %v, want InvalidDate", err)
	}

	got, err := f.engine.Update(f.ctx, c.ID, UpdateInput{Status: ptr("CANCELED")})
	if err != nil {
		t.Fatalf("cancel past: %v", err)
	}
	if got.Status != consultationdomain.StatusCanceled {
		t.Fatalf("status = %s, want CANCELED", got.Status)
	}
	if len(f.notifier.updated) != 1 || f.notifier.updated[0].Status != consultationdomain.StatusCanceled {
		t.Fatalf("update mail = %+v", f.notifier.updated)
	}
}

func TestUpdateDateTimeRules(t *testing.T) {
	f := newFixture(t)
	at := f.now.Add(24 * time.Hour)
	c := f.schedule(at)
	busy := f.schedule(at.Add(time.Hour))

	tests := []struct {
		name string
		to   time.Time
		want error
	}{
		{"same instant", at, domain.ErrTimeConflict},
		{"past", f.now.Add(-time.Hour), domain.ErrInvalidDate},
		{"now", f.now, domain.ErrInvalidDate},
		{"taken slot", busy.DateTime, domain.ErrTimeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.Update(f.ctx, c.ID, UpdateInput{DateTime: ptr(tt.to)})
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	moved, err := f.engine.Update(f.ctx, c.ID, UpdateInput{DateTime: ptr(at.Add(3 * time.Hour))})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if !moved.DateTime.Equal(at.Add(3 * time.Hour)) {
		t.Fatalf("date_time = %s", moved.DateTime)
	}
	if moved.Treatment.Name != "Limpeza" {
		t.Fatalf("updated consultation should be hydrated, got %+v", moved.Treatment)
	}
}

func TestUpdateIntervalModeSurfacesTreatmentLookupErrors(t *testing.T) {
	f := newFixture(t, WithConflictMode(consultationdomain.ConflictInterval))
	c := f.schedule(f.now.Add(24 * time.Hour))

	boom := errors.New("db down")
	f.engine.treatments = failingFind{Treatments: f.catalog, err: boom}

	_, err := f.engine.Update(f.ctx, c.ID, UpdateInput{DateTime: ptr(f.now.Add(48 * time.Hour))})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the lookup error", err)
	}
}

func TestUpdateRequiresLinkedProfessional(t *testing.T) {
	f := newFixture(t)
	c := f.schedule(f.now.Add(24 * time.Hour))
	whitening := f.treatment("Clareamento", 60)

	_, err := f.engine.Update(f.ctx, c.ID, UpdateInput{TreatmentID: &whitening})
	if !errors.Is(err, domain.ErrProfessionalNotLinked) {
		t.Fatalf("err = %v, want ProfessionalNotLinked", err)
	}

	linked, _ := f.catalog.IsLinked(f.ctx, whitening, f.professional)
	if linked {
		t.Fatal("update must not auto-link")
	}

	if err := f.catalog.LinkProfessional(f.ctx, whitening, f.professional); err != nil {
		t.Fatalf("link: %v", err)
	}
	got, err := f.engine.Update(f.ctx, c.ID, UpdateInput{TreatmentID: &whitening})
	if err != nil {
		t.Fatalf("update after link: %v", err)
	}
	if got.TreatmentID != whitening {
		t.Fatalf("treatment = %s, want %s", got.TreatmentID, whitening)
	}
}

func TestUpdateUnknownReferences(t *testing.T) {
	f := newFixture(t)
	c := f.schedule(f.now.Add(24 * time.Hour))

	tests := []struct {
		name string
		in   UpdateInput
		want error
	}{
		{"client", UpdateInput{ClientID: ptr(models.NewLinkID())}, notFound("client")},
		{"professional", UpdateInput{ProfessionalID: ptr(models.NewLinkID())}, notFound("professional")},
		{"treatment", UpdateInput{TreatmentID: ptr(uuid.New())}, notFound("treatment")},
		{"status", UpdateInput{Status: ptr("ARCHIVED")}, domain.ErrInvalidStatusTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.Update(f.ctx, c.ID, tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUpdateMovesToAnotherProfessional(t *testing.T) {
	f := newFixture(t)
	at := f.now.Add(24 * time.Hour)
	c := f.schedule(at)

	other := f.member("Dr. Carlos", models.RoleProfessional)
	if err := f.catalog.LinkProfessional(f.ctx, f.cleaning, other); err != nil {
		t.Fatalf("link: %v", err)
	}

	got, err := f.engine.Update(f.ctx, c.ID, UpdateInput{ProfessionalID: &other})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.ProfessionalID != other || got.Professional.User.Name != "Dr. Carlos" {
		t.Fatalf("professional = %+v", got.Professional)
	}
}

// ======================================================
// DELETE
// ======================================================

func TestDeleteMailsAndRemoves(t *testing.T) {
	f := newFixture(t)
	c := f.schedule(f.now.Add(24 * time.Hour))

	if err := f.engine.Delete(f.ctx, c.ID, nil); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(f.notifier.canceled) != 1 || f.notifier.canceled[0].ClientName != "Ana Cliente" {
		t.Fatalf("cancellation mail = %+v", f.notifier.canceled)
	}

	if _, err := f.engine.Get(f.ctx, c.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get after delete err = %v", err)
	}
	if err := f.engine.Delete(f.ctx, c.ID, nil); !errors.Is(err, notFound("consultation")) {
		t.Fatalf("second delete err = %v", err)
	}
}

func TestDeleteSucceedsWhenMailFails(t *testing.T) {
	f := newFixture(t)
	c := f.schedule(f.now.Add(24 * time.Hour))
	f.notifier.err = errors.New("smtp down")

	if err := f.engine.Delete(f.ctx, c.ID, nil); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

// ======================================================
// QUERIES
// ======================================================

func TestListsAreOrderedAndDenormalized(t *testing.T) {
	f := newFixture(t)
	later := f.schedule(f.now.Add(48 * time.Hour))
	sooner := f.schedule(f.now.Add(24 * time.Hour))

	other := f.member("Dr. Carlos", models.RoleProfessional)
	if _, err := f.engine.Create(f.ctx, CreateInput{
		ClientID:       f.member("Bruno", models.RoleClient),
		ProfessionalID: other,
		TreatmentID:    f.cleaning,
		DateTime:       f.now.Add(72 * time.Hour),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byClient, err := f.engine.ListByClient(f.ctx, f.client)
	if err != nil {
		t.Fatalf("ListByClient: %v", err)
	}
	if len(byClient) != 2 || byClient[0].ID != sooner.ID || byClient[1].ID != later.ID {
		t.Fatalf("ListByClient order = %+v", byClient)
	}
	if byClient[0].ProfessionalName != "Dra. Beatriz" || byClient[0].TreatmentName != "Limpeza" {
		t.Fatalf("view not denormalized: %+v", byClient[0])
	}

	byProfessional, err := f.engine.ListByProfessional(f.ctx, other)
	if err != nil || len(byProfessional) != 1 {
		t.Fatalf("ListByProfessional = %v, %v", byProfessional, err)
	}

	all, err := f.engine.ListAll(f.ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("ListAll = %d, %v", len(all), err)
	}

	empty, err := f.engine.ListByClient(f.ctx, models.NewLinkID())
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("unknown client should list empty, got %v %v", empty, err)
	}
}
