package identity

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	identitydomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type UpdateUserInput struct {
	Name  *string
	Email *string
	Phone *string
}

type Page struct {
	Members []models.RoleMember
	Total   int64
	Page    int
	PerPage int
}

func (r *Registry) GetUser(
	ctx context.Context,
	actor identitydomain.Actor,
	id models.UserID,
) (*models.User, error) {

	user, err := r.repo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("user")
	}

	if err := identitydomain.Authorize(actor, identitydomain.ActionViewUser, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns every user for administrators and only clients for
// professionals.
func (r *Registry) ListUsers(
	ctx context.Context,
	actor identitydomain.Actor,
) ([]models.User, error) {

	switch {
	case identitydomain.Allowed(actor.Role, identitydomain.ActionListUsers, ""):
		return r.repo.ListUsers(ctx, "")
	case identitydomain.Allowed(actor.Role, identitydomain.ActionListUsers, models.RoleClient):
		return r.repo.ListUsers(ctx, models.RoleClient)
	}
	return nil, domain.Forbidden()
}

// ListProfessionals is open to every authenticated user: clients need it
// to pick a professional.
func (r *Registry) ListProfessionals(ctx context.Context, page, perPage int) (*Page, error) {
	return r.listMembers(ctx, models.RoleProfessional, page, perPage)
}

func (r *Registry) ListClients(
	ctx context.Context,
	actor identitydomain.Actor,
	page int,
	perPage int,
) (*Page, error) {

	if !identitydomain.Allowed(actor.Role, identitydomain.ActionListUsers, models.RoleClient) {
		return nil, domain.Forbidden()
	}
	return r.listMembers(ctx, models.RoleClient, page, perPage)
}

func (r *Registry) listMembers(ctx context.Context, role models.Role, page, perPage int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	members, total, err := r.repo.ListMembers(ctx, role, (page-1)*perPage, perPage)
	if err != nil {
		return nil, err
	}

	return &Page{Members: members, Total: total, Page: page, PerPage: perPage}, nil
}

// UpdateUser changes name, e-mail and phone. Role and CPF are immutable.
func (r *Registry) UpdateUser(
	ctx context.Context,
	actor identitydomain.Actor,
	id models.UserID,
	in UpdateUserInput,
) (*models.User, error) {

	user, err := r.repo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("user")
	}

	if err := identitydomain.Authorize(actor, identitydomain.ActionUpdateUser, user); err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.InvalidInput("O nome é obrigatório.")
		}
		user.Name = name
	}

	if in.Email != nil {
		email := validators.NormalizeEmail(*in.Email)
		if !validators.IsEmail(email) {
			return nil, domain.InvalidInput("E-mail inválido.")
		}
		if email != user.Email {
			other, err := r.repo.FindUserByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != user.ID {
				return nil, domain.DuplicateIdentity()
			}
			user.Email = email
		}
	}

	if in.Phone != nil {
		user.Phone = in.Phone
	}

	if err := r.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	r.audit.Dispatch(audit.Event{
		UserID: &actor.UserID,
		Action: "user_updated",
		Entity: "user",
		Metadata: map[string]any{
			"target_user_id": user.ID,
		},
	})

	return user, nil
}

func (r *Registry) DeleteUser(
	ctx context.Context,
	actor identitydomain.Actor,
	id models.UserID,
) error {

	user, err := r.repo.FindUserByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NotFound("user")
	}

	if err := identitydomain.Authorize(actor, identitydomain.ActionDeleteUser, user); err != nil {
		return err
	}

	busy, err := r.repo.HasConsultations(ctx, id)
	if err != nil {
		return err
	}
	if busy {
		return domain.HasDependents("user")
	}

	if err := r.repo.DeleteUser(ctx, id); err != nil {
		return err
	}

	r.audit.Dispatch(audit.Event{
		UserID: &actor.UserID,
		Action: "user_deleted",
		Entity: "user",
		Metadata: map[string]any{
			"target_user_id": id,
		},
	})

	return nil
}
