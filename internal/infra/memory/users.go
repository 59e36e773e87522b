package memory

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	identitydomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type UserRepository struct{ s *Store }

func (r *UserRepository) CreateUserWithLink(
	_ context.Context,
	u *models.User,
) (*models.RoleLink, error) {

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.links[u.Role]; !ok {
		return nil, domain.InvalidInput("Perfil de usuário inválido.")
	}
	for _, other := range r.s.users {
		if other.Email == u.Email || other.CPF == u.CPF {
			return nil, domain.DuplicateIdentity()
		}
	}

	if u.ID.IsZero() {
		u.ID = models.NewUserID()
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = *u

	link := models.RoleLink{ID: models.NewLinkID(), UserID: u.ID, Role: u.Role}
	r.s.links[u.Role][link.ID] = link
	return &link, nil
}

func (r *UserRepository) FindUserByID(_ context.Context, id models.UserID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	return r.findBy(func(u models.User) bool { return u.Email == email }), nil
}

func (r *UserRepository) FindUserByCPF(_ context.Context, cpf string) (*models.User, error) {
	return r.findBy(func(u models.User) bool { return u.CPF == cpf }), nil
}

func (r *UserRepository) findBy(match func(models.User) bool) *models.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			return &u
		}
	}
	return nil
}

func (r *UserRepository) ListUsers(_ context.Context, role models.Role) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *UserRepository) UpdateUser(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; !ok {
		return domain.NotFound("user")
	}
	for id, other := range r.s.users {
		if id != u.ID && other.Email == u.Email {
			return domain.DuplicateIdentity()
		}
	}

	u.UpdatedAt = time.Now()
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepository) DeleteUser(_ context.Context, id models.UserID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return domain.NotFound("user")
	}
	if r.s.userHasConsultations(id) {
		return domain.HasDependents("user")
	}

	for role, links := range r.s.links {
		for linkID, l := range links {
			if l.UserID == id {
				delete(r.s.links[role], linkID)
				for _, j := range r.s.joins {
					delete(j, linkID)
				}
			}
		}
	}
	delete(r.s.users, id)
	return nil
}

func (r *UserRepository) CreateLink(
	_ context.Context,
	role models.Role,
	userID models.UserID,
) (*models.RoleLink, error) {

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.links[role]; !ok {
		return nil, domain.InvalidInput("Perfil de usuário inválido.")
	}
	if _, ok := r.s.users[userID]; !ok {
		return nil, domain.NotFound("user")
	}
	if existing, ok := r.s.linkByUser(role, userID); ok {
		return &existing, nil
	}

	link := models.RoleLink{ID: models.NewLinkID(), UserID: userID, Role: role}
	r.s.links[role][link.ID] = link
	return &link, nil
}

func (r *UserRepository) FindLinkByID(
	_ context.Context,
	role models.Role,
	id models.LinkID,
) (*models.RoleLink, error) {

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.links[role][id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *UserRepository) FindLinkByUserID(
	_ context.Context,
	role models.Role,
	userID models.UserID,
) (*models.RoleLink, error) {

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.linkByUser(role, userID)
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *UserRepository) ListMembers(
	_ context.Context,
	role models.Role,
	offset int,
	limit int,
) ([]models.RoleMember, int64, error) {

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]models.RoleMember, 0, len(r.s.links[role]))
	for _, l := range r.s.links[role] {
		all = append(all, models.RoleMember{User: r.s.users[l.UserID], LinkID: l.ID})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	total := int64(len(all))
	if offset >= len(all) {
		return []models.RoleMember{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *UserRepository) HasConsultations(_ context.Context, userID models.UserID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.userHasConsultations(userID), nil
}

// caller holds the lock
func (s *Store) userHasConsultations(userID models.UserID) bool {
	client, isClient := s.linkByUser(models.RoleClient, userID)
	pro, isPro := s.linkByUser(models.RoleProfessional, userID)

	for _, c := range s.consultations {
		if (isClient && c.ClientID == client.ID) || (isPro && c.ProfessionalID == pro.ID) {
			return true
		}
	}
	return false
}

var _ identitydomain.Repository = (*UserRepository)(nil)
