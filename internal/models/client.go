package models

import "gorm.io/gorm"

// Role links: one row per user, created together with the user.
// Consultations and treatments reference these ids, never the user id.

type Client struct {
	ID     LinkID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID UserID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User   `gorm:"constraint:OnDelete:CASCADE;" json:"user"`
}

type Professional struct {
	ID     LinkID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID UserID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User   `gorm:"constraint:OnDelete:CASCADE;" json:"user"`
}

type Administrator struct {
	ID     LinkID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID UserID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User   `gorm:"constraint:OnDelete:CASCADE;" json:"user"`
}

func (c *Client) BeforeCreate(*gorm.DB) error {
	if c.ID.IsZero() {
		c.ID = NewLinkID()
	}
	return nil
}

func (p *Professional) BeforeCreate(*gorm.DB) error {
	if p.ID.IsZero() {
		p.ID = NewLinkID()
	}
	return nil
}

func (a *Administrator) BeforeCreate(*gorm.DB) error {
	if a.ID.IsZero() {
		a.ID = NewLinkID()
	}
	return nil
}

// RoleLink is the role-agnostic view of a Client, Professional or
// Administrator row.
type RoleLink struct {
	ID     LinkID `json:"id"`
	UserID UserID `json:"user_id"`
	Role   Role   `json:"role"`
}

// RoleMember is a user listed together with its link id.
type RoleMember struct {
	User
	LinkID LinkID `json:"link_id"`
}
