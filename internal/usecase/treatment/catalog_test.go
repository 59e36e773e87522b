package treatment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type linkLookup struct{ users *memory.UserRepository }

func (l linkLookup) FindLinkByID(ctx context.Context, role models.Role, id models.LinkID) (*models.RoleLink, error) {
	return l.users.FindLinkByID(ctx, role, id)
}

func setup(t *testing.T) (*Catalog, *memory.Store, models.LinkID) {
	t.Helper()

	store := memory.New()
	link, err := store.Users().CreateUserWithLink(context.Background(), &models.User{
		Name:  "Dra. Beatriz",
		Email: "bia@odonto.com.br",
		CPF:   "12345678901",
		Role:  models.RoleProfessional,
	})
	if err != nil {
		t.Fatalf("seed professional: %v", err)
	}

	return NewCatalog(store.Treatments(), linkLookup{store.Users()}, nil), store, link.ID
}

func TestCreateValidation(t *testing.T) {
	catalog, _, _ := setup(t)

	tests := []struct {
		name string
		in   CreateInput
	}{
		{"short name", CreateInput{Name: "ab", DurationMinutes: 30, Price: 100}},
		{"zero duration", CreateInput{Name: "Limpeza", DurationMinutes: 0, Price: 100}},
		{"negative price", CreateInput{Name: "Limpeza", DurationMinutes: 30, Price: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Create(context.Background(), tt.in)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("err = %v, want InvalidInput", err)
			}
		})
	}
}

func TestCreateWithProfessional(t *testing.T) {
	catalog, _, pro := setup(t)
	ctx := context.Background()

	tr, err := catalog.Create(ctx, CreateInput{
		Name:            "  Canal  ",
		DurationMinutes: 90,
		Price:           800,
		ProfessionalID:  &pro,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tr.Name != "Canal" {
		t.Fatalf("name = %q, want trimmed", tr.Name)
	}
	if len(tr.Professionals) != 1 || tr.Professionals[0].ID != pro {
		t.Fatalf("professionals = %+v", tr.Professionals)
	}

	unknown := models.NewLinkID()
	_, err = catalog.Create(ctx, CreateInput{Name: "Canal", DurationMinutes: 90, Price: 800, ProfessionalID: &unknown})
	if !errors.Is(err, &domain.Error{Kind: domain.KindNotFound, Resource: "professional"}) {
		t.Fatalf("unknown professional err = %v", err)
	}
}

func TestLinkIsDeduplicated(t *testing.T) {
	catalog, _, pro := setup(t)
	ctx := context.Background()

	tr, err := catalog.Create(ctx, CreateInput{Name: "Limpeza", DurationMinutes: 30, Price: 100})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := catalog.LinkProfessional(ctx, tr.ID, pro); err != nil {
			t.Fatalf("LinkProfessional #%d: %v", i+1, err)
		}
	}

	got, err := catalog.Get(ctx, tr.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Professionals) != 1 {
		t.Fatalf("professionals = %d, want 1", len(got.Professionals))
	}

	list, err := catalog.FindByProfessional(ctx, pro)
	if err != nil || len(list) != 1 {
		t.Fatalf("FindByProfessional = %v, %v", list, err)
	}

	if err := catalog.UnlinkProfessional(ctx, tr.ID, pro); err != nil {
		t.Fatalf("Unlink: %v", err)
	}
	linked, _ := catalog.IsLinked(ctx, tr.ID, pro)
	if linked {
		t.Fatal("still linked after unlink")
	}
}

func TestLinkMissingParties(t *testing.T) {
	catalog, _, pro := setup(t)
	ctx := context.Background()

	err := catalog.LinkProfessional(ctx, uuid.New(), pro)
	if !errors.Is(err, &domain.Error{Kind: domain.KindNotFound, Resource: "treatment"}) {
		t.Fatalf("missing treatment err = %v", err)
	}

	tr, _ := catalog.Create(ctx, CreateInput{Name: "Limpeza", DurationMinutes: 30, Price: 100})
	err = catalog.LinkProfessional(ctx, tr.ID, models.NewLinkID())
	if !errors.Is(err, &domain.Error{Kind: domain.KindNotFound, Resource: "professional"}) {
		t.Fatalf("missing professional err = %v", err)
	}
}

func TestUpdatePartial(t *testing.T) {
	catalog, _, _ := setup(t)
	ctx := context.Background()

	tr, _ := catalog.Create(ctx, CreateInput{Name: "Limpeza", DurationMinutes: 30, Price: 100})

	price := 130.0
	got, err := catalog.Update(ctx, tr.ID, UpdateInput{Price: &price})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Price != 130 || got.Name != "Limpeza" || got.DurationMinutes != 30 {
		t.Fatalf("got %+v", got)
	}

	zero := 0
	if _, err := catalog.Update(ctx, tr.ID, UpdateInput{DurationMinutes: &zero}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("zero duration err = %v", err)
	}
	if _, err := catalog.Update(ctx, uuid.New(), UpdateInput{Price: &price}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing treatment err = %v", err)
	}
}

func TestDeleteRefusesWhenReferenced(t *testing.T) {
	catalog, store, pro := setup(t)
	ctx := context.Background()

	tr, _ := catalog.Create(ctx, CreateInput{Name: "Limpeza", DurationMinutes: 30, Price: 100})

	client, err := store.Users().CreateUserWithLink(ctx, &models.User{
		Name: "Ana", Email: "ana@mail.com", CPF: "98765432100", Role: models.RoleClient,
	})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	if err := store.Consultations().Create(ctx, &models.Consultation{
		ClientID:       client.ID,
		ProfessionalID: pro,
		TreatmentID:    tr.ID,
		DateTime:       time.Now().Add(24 * time.Hour),
		Status:         models.ConsultationScheduled,
	}); err != nil {
		t.Fatalf("seed consultation: %v", err)
	}

	if err := catalog.Delete(ctx, tr.ID); !errors.Is(err, domain.ErrHasDependents) {
		t.Fatalf("err = %v, want HasDependents", err)
	}

	other, _ := catalog.Create(ctx, CreateInput{Name: "Clareamento", DurationMinutes: 60, Price: 400})
	if err := catalog.Delete(ctx, other.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := catalog.Delete(ctx, other.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}
