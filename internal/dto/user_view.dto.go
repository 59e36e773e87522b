package dto

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type UserView struct {
	ID        models.UserID  `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	CPF       string         `json:"cpf"`
	Phone     *string        `json:"phone"`
	Role      models.Role    `json:"role"`
	LinkID    *models.LinkID `json:"link_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewUserView(u models.User, link *models.RoleLink) UserView {
	v := UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CPF:       u.CPF,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.UTC(),
	}
	if link != nil {
		v.LinkID = &link.ID
	}
	return v
}

func NewMemberViews(ms []models.RoleMember) []UserView {
	out := make([]UserView, 0, len(ms))
	for _, m := range ms {
		v := NewUserView(m.User, nil)
		id := m.LinkID
		v.LinkID = &id
		out = append(out, v)
	}
	return out
}

func NewUserViews(us []models.User) []UserView {
	out := make([]UserView, 0, len(us))
	for _, u := range us {
		out = append(out, NewUserView(u, nil))
	}
	return out
}
