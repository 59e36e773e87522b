package identity

import (
	"errors"
	"testing"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func TestAuthorize(t *testing.T) {
	admin := Actor{UserID: models.NewUserID(), Role: models.RoleAdmin}
	pro := Actor{UserID: models.NewUserID(), Role: models.RoleProfessional}
	client := Actor{UserID: models.NewUserID(), Role: models.RoleClient}

	clientUser := &models.User{ID: client.UserID, Role: models.RoleClient}
	otherClient := &models.User{ID: models.NewUserID(), Role: models.RoleClient}
	otherPro := &models.User{ID: models.NewUserID(), Role: models.RoleProfessional}

	tests := []struct {
		name   string
		actor  Actor
		action Action
		target *models.User
		allow  bool
	}{
		{"admin views anyone", admin, ActionViewUser, otherPro, true},
		{"admin deletes anyone", admin, ActionDeleteUser, otherClient, true},
		{"professional views client", pro, ActionViewUser, otherClient, true},
		{"professional views professional", pro, ActionViewUser, otherPro, false},
		{"professional updates client", pro, ActionUpdateUser, otherClient, false},
		{"client views self", client, ActionViewUser, clientUser, true},
		{"client updates self", client, ActionUpdateUser, clientUser, true},
		{"client views other client", client, ActionViewUser, otherClient, false},
		{"client lists users", client, ActionListUsers, nil, false},
		{"client lists all consultations", client, ActionListConsultations, nil, false},
		{"admin lists all consultations", admin, ActionListConsultations, nil, true},
		{"professional manages treatments", pro, ActionManageTreatments, nil, true},
		{"client manages treatments", client, ActionManageTreatments, nil, false},
		{"professional registers users", pro, ActionRegisterUser, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.action, tt.target)
			if tt.allow && err != nil {
				t.Fatalf("Authorize() error = %v, want nil", err)
			}
			if !tt.allow && !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("Authorize() error = %v, want Forbidden", err)
			}
		})
	}
}
