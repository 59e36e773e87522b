package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is an in-app message for a user, created by the
// reminder job alongside the reminder e-mail.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    UserID    `gorm:"type:uuid;index;not null" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Viewed    bool      `gorm:"default:false" json:"viewed"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(*gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
