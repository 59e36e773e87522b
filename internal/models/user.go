package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleProfessional Role = "PROFESSIONAL"
	RoleClient       Role = "CLIENT"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProfessional, RoleClient:
		return true
	}
	return false
}

type User struct {
	ID UserID `gorm:"type:uuid;primaryKey" json:"id"`

	Name         string  `gorm:"size:100;not null" json:"name"`
	Email        string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	CPF          string  `gorm:"column:cpf;size:11;uniqueIndex;not null" json:"cpf"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	Phone        *string `gorm:"size:20" json:"phone"`
	Role         Role    `gorm:"size:20;not null;default:'CLIENT'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID.IsZero() {
		u.ID = NewUserID()
	}
	return nil
}
