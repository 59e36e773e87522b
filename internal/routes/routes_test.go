package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/consultation"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/statistics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/treatment"
)

const password = "Senha@123"

type api struct {
	t      *testing.T
	router *gin.Engine
	admin  string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App: config.AppConfig{Version: "test", Timezone: "America/Sao_Paulo"},
		JWT: config.JWTConfig{
			Secret:          "test-secret-with-at-least-32-characters",
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
			Issuer:          "clinic-scheduler-test",
		},
		RateLimit: config.RateLimitConfig{
			RequestsPerSecond:     1000,
			BurstSize:             1000,
			AuthRequestsPerMinute: 1000,
		},
	}

	store := memory.New()
	mailer := notification.NewDispatcher(notification.NewLogSender(zap.NewNop()), cfg.App.Timezone, nil)

	registry := identity.NewRegistry(
		store.Users(),
		nil,
		nil,
		identity.WithPasswordCost(bcrypt.MinCost),
		identity.WithWelcome(mailer),
	)
	catalog := treatment.NewCatalog(store.Treatments(), registry, nil)
	engine := consultation.NewEngine(store.Consultations(), registry, catalog, mailer, nil, nil)

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config:     cfg,
		Tokens:     auth.NewJWTManager(cfg.JWT),
		Registry:   registry,
		Catalog:    catalog,
		Engine:     engine,
		Statistics: statistics.NewGetStatistics(store.Statistics()),
		Inbox:      store.Notifications(),
		AuditLogs:  store.Audit(),
	})

	a := &api{t: t, router: r}

	if _, _, err := registry.CreateUser(context.Background(), identity.Profile{
		Name:     "Admin",
		Email:    "admin@odonto.com.br",
		CPF:      "00000000001",
		Password: password,
		Role:     models.RoleAdmin,
	}); err != nil {
		t.Fatalf("seeding admin: %v", err)
	}
	a.admin = a.login("admin@odonto.com.br")

	return a
}

func (a *api) do(method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encoding body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func (a *api) expect(w *httptest.ResponseRecorder, status int) {
	a.t.Helper()
	if w.Code != status {
		a.t.Fatalf("status = %d, want %d; body: %s", w.Code, status, w.Body.String())
	}
}

func (a *api) login(email string) string {
	a.t.Helper()

	w, body := a.do(http.MethodPost, "/sessions", "", gin.H{"email": email, "password": password})
	a.expect(w, http.StatusOK)

	token, _ := body["token"].(string)
	if token == "" {
		a.t.Fatalf("login returned no token: %s", w.Body.String())
	}
	return token
}

// register creates a user through the API and returns its role link id.
func (a *api) register(name, email, cpf string, role models.Role) string {
	a.t.Helper()

	req := gin.H{"name": name, "email": email, "cpf": cpf, "password": password}

	var w *httptest.ResponseRecorder
	var body map[string]any
	if role == models.RoleClient {
		w, body = a.do(http.MethodPost, "/register/client", "", req)
	} else {
		req["role"] = role
		w, body = a.do(http.MethodPost, "/register", a.admin, req)
	}
	a.expect(w, http.StatusCreated)

	user, _ := body["user"].(map[string]any)
	link, _ := user["link_id"].(string)
	if link == "" {
		a.t.Fatalf("register returned no link id: %s", w.Body.String())
	}
	return link
}

func errorCode(body map[string]any) string {
	code, _ := body["error_code"].(string)
	return code
}

// ======================================================
// TESTS
// ======================================================

func TestHealth(t *testing.T) {
	a := newAPI(t)

	w, body := a.do(http.MethodGet, "/health", "", nil)
	a.expect(w, http.StatusOK)
	if body["database"] != "memory" {
		t.Errorf("database = %v, want memory", body["database"])
	}
}

func TestSessionFlow(t *testing.T) {
	a := newAPI(t)
	a.register("Ana", "ana@odonto.com.br", "11111111111", models.RoleClient)

	w, body := a.do(http.MethodPost, "/sessions", "", gin.H{"email": "ana@odonto.com.br", "password": "Errada@1"})
	a.expect(w, http.StatusUnauthorized)
	if errorCode(body) != "invalid_credentials" {
		t.Errorf("error_code = %q", errorCode(body))
	}

	w, body = a.do(http.MethodPost, "/sessions", "", gin.H{"email": "ANA@odonto.com.br", "password": password})
	a.expect(w, http.StatusOK)
	refresh, _ := body["refresh_token"].(string)

	w, body = a.do(http.MethodPatch, "/token/refresh", "", gin.H{"refresh_token": refresh})
	a.expect(w, http.StatusOK)
	token, _ := body["token"].(string)

	w, body = a.do(http.MethodGet, "/me", token, nil)
	a.expect(w, http.StatusOK)
	user, _ := body["user"].(map[string]any)
	if user["role"] != string(models.RoleClient) {
		t.Errorf("role = %v, want CLIENT", user["role"])
	}

	// access tokens are not refresh tokens
	w, _ = a.do(http.MethodPatch, "/token/refresh", "", gin.H{"refresh_token": token})
	a.expect(w, http.StatusUnauthorized)
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	a := newAPI(t)
	a.register("Ana", "ana@odonto.com.br", "11111111111", models.RoleClient)

	w, body := a.do(http.MethodPost, "/register/client", "", gin.H{
		"name": "Outra", "email": "ana@odonto.com.br", "cpf": "22222222222", "password": password,
	})
	a.expect(w, http.StatusConflict)
	if errorCode(body) != "duplicate_identity" {
		t.Errorf("error_code = %q", errorCode(body))
	}
}

func TestRoleGuards(t *testing.T) {
	a := newAPI(t)
	a.register("Ana", "ana@odonto.com.br", "11111111111", models.RoleClient)
	client := a.login("ana@odonto.com.br")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
	}{
		{"no token", http.MethodGet, "/consultations/00000000-0000-0000-0000-000000000000", "", nil, http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/me", "nope", nil, http.StatusUnauthorized},
		{"client lists all consultations", http.MethodGet, "/consultations", client, nil, http.StatusForbidden},
		{"client reads statistics", http.MethodGet, "/statistics", client, nil, http.StatusForbidden},
		{"client creates treatment", http.MethodPost, "/treatments", client, gin.H{"name": "X", "duration_minutes": 30, "price": 10}, http.StatusForbidden},
		{"client registers admin", http.MethodPost, "/register", client, gin.H{"name": "X"}, http.StatusForbidden},
		{"client lists clients", http.MethodGet, "/clients", client, nil, http.StatusForbidden},
		{"client lists professionals", http.MethodGet, "/professionals", client, nil, http.StatusOK},
		{"admin reads statistics", http.MethodGet, "/statistics", a.admin, nil, http.StatusOK},
		{"client reads audit logs", http.MethodGet, "/audit-logs", client, nil, http.StatusForbidden},
		{"admin reads audit logs", http.MethodGet, "/audit-logs?from=2030-01-01", a.admin, nil, http.StatusOK},
		{"invalid id", http.MethodGet, "/consultations/abc", client, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := a.do(tt.method, tt.path, tt.token, tt.body)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d; body: %s", w.Code, tt.status, w.Body.String())
			}
		})
	}
}

func TestConsultationLifecycle(t *testing.T) {
	a := newAPI(t)

	clientID := a.register("Ana", "ana@odonto.com.br", "11111111111", models.RoleClient)
	professionalID := a.register("Dra. Beatriz", "bia@odonto.com.br", "22222222222", models.RoleProfessional)
	client := a.login("ana@odonto.com.br")

	w, body := a.do(http.MethodPost, "/treatments", a.admin, gin.H{
		"name": "Limpeza", "duration_minutes": 30, "price": 150,
	})
	a.expect(w, http.StatusCreated)
	treatmentID, _ := body["id"].(string)

	at := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Minute).Format(time.RFC3339)
	create := gin.H{
		"client_id":       clientID,
		"professional_id": professionalID,
		"treatment_id":    treatmentID,
		"date_time":       at,
	}

	// 1️⃣ create
	w, body = a.do(http.MethodPost, "/consultations", client, create)
	a.expect(w, http.StatusCreated)
	id, _ := body["id"].(string)
	if body["status"] != string(models.ConsultationScheduled) {
		t.Errorf("status = %v, want SCHEDULED", body["status"])
	}
	if body["treatment_name"] != "Limpeza" {
		t.Errorf("treatment_name = %v", body["treatment_name"])
	}

	// the professional is now linked to the treatment
	w, body = a.do(http.MethodGet, "/professionals/"+professionalID+"/treatments", client, nil)
	a.expect(w, http.StatusOK)
	if body["total"] != float64(1) {
		t.Errorf("linked treatments = %v, want 1", body["total"])
	}

	// 2️⃣ same slot
	w, body = a.do(http.MethodPost, "/consultations", client, create)
	a.expect(w, http.StatusConflict)
	if errorCode(body) != "time_conflict" {
		t.Errorf("error_code = %q", errorCode(body))
	}

	// 3️⃣ lists
	w, body = a.do(http.MethodGet, "/clients/"+clientID+"/consultations", client, nil)
	a.expect(w, http.StatusOK)
	if body["total"] != float64(1) {
		t.Errorf("client consultations = %v, want 1", body["total"])
	}

	w, body = a.do(http.MethodGet, "/consultations", a.admin, nil)
	a.expect(w, http.StatusOK)
	if body["total"] != float64(1) {
		t.Errorf("all consultations = %v, want 1", body["total"])
	}

	// 4️⃣ cancel
	w, body = a.do(http.MethodPatch, "/consultations/"+id, client, gin.H{"status": "CANCELED"})
	a.expect(w, http.StatusOK)
	if body["status"] != string(models.ConsultationCanceled) {
		t.Errorf("status = %v, want CANCELED", body["status"])
	}

	w, body = a.do(http.MethodPatch, "/consultations/"+id, client, gin.H{"status": "SCHEDULED"})
	a.expect(w, http.StatusBadRequest)
	if errorCode(body) != "invalid_status_transition" {
		t.Errorf("error_code = %q", errorCode(body))
	}

	// 5️⃣ delete
	w, _ = a.do(http.MethodDelete, "/consultations/"+id, client, nil)
	a.expect(w, http.StatusNoContent)

	w, body = a.do(http.MethodDelete, "/consultations/"+id, client, nil)
	a.expect(w, http.StatusNotFound)
	if errorCode(body) != "consultation_not_found" {
		t.Errorf("error_code = %q", errorCode(body))
	}
}

func TestConsultationInPast(t *testing.T) {
	a := newAPI(t)

	clientID := a.register("Ana", "ana@odonto.com.br", "11111111111", models.RoleClient)
	professionalID := a.register("Dra. Beatriz", "bia@odonto.com.br", "22222222222", models.RoleProfessional)

	_, body := a.do(http.MethodPost, "/treatments", a.admin, gin.H{
		"name": "Canal", "duration_minutes": 60, "price": 900,
	})
	treatmentID, _ := body["id"].(string)

	w, body := a.do(http.MethodPost, "/consultations", a.admin, gin.H{
		"client_id":       clientID,
		"professional_id": professionalID,
		"treatment_id":    treatmentID,
		"date_time":       time.Now().Add(-time.Hour).UTC().Format(time.RFC3339),
	})
	a.expect(w, http.StatusBadRequest)
	if errorCode(body) != "invalid_date" {
		t.Errorf("error_code = %q", errorCode(body))
	}
}

func TestTreatmentWithConsultationsCannotBeDeleted(t *testing.T) {
	a := newAPI(t)

	clientID := a.register("Ana", "ana@odonto.com.br", "11111111111", models.RoleClient)
	professionalID := a.register("Dra. Beatriz", "bia@odonto.com.br", "22222222222", models.RoleProfessional)

	_, body := a.do(http.MethodPost, "/treatments", a.admin, gin.H{
		"name": "Clareamento", "duration_minutes": 45, "price": 400,
	})
	treatmentID, _ := body["id"].(string)

	w, _ := a.do(http.MethodPost, "/consultations", a.admin, gin.H{
		"client_id":       clientID,
		"professional_id": professionalID,
		"treatment_id":    treatmentID,
		"date_time":       time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
	})
	a.expect(w, http.StatusCreated)

	w, body = a.do(http.MethodDelete, "/treatments/"+treatmentID, a.admin, nil)
	a.expect(w, http.StatusConflict)
	if errorCode(body) != "has_dependents" {
		t.Errorf("error_code = %q", errorCode(body))
	}
}

func TestNotificationsEmptyForNewUser(t *testing.T) {
	a := newAPI(t)

	w, body := a.do(http.MethodGet, "/me/notifications", a.admin, nil)
	a.expect(w, http.StatusOK)
	if body["total"] != float64(0) {
		t.Errorf("total = %v, want 0", body["total"])
	}

	w, body = a.do(http.MethodPatch, "/me/notifications/00000000-0000-0000-0000-000000000001/viewed", a.admin, nil)
	a.expect(w, http.StatusNotFound)
	if errorCode(body) != "notification_not_found" {
		t.Errorf("error_code = %q", errorCode(body))
	}
}
