package models

import (
	"database/sql/driver"

	"github.com/google/uuid"
)

// UserID identifies a user account. LinkID identifies a role link
// (client, professional or administrator record). They are never
// interchangeable: a consultation references links, not users.
type (
	UserID uuid.UUID
	LinkID uuid.UUID
)

func NewUserID() UserID { return UserID(uuid.New()) }
func NewLinkID() LinkID { return LinkID(uuid.New()) }

func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	return UserID(id), err
}

func ParseLinkID(s string) (LinkID, error) {
	id, err := uuid.Parse(s)
	return LinkID(id), err
}

// --------------------------------------------------
// UserID
// --------------------------------------------------

func (id UserID) String() string { return uuid.UUID(id).String() }
func (id UserID) IsZero() bool   { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *UserID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id UserID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }
func (id *UserID) Scan(src any) error        { return (*uuid.UUID)(id).Scan(src) }
func (UserID) GormDataType() string          { return "uuid" }

// --------------------------------------------------
// LinkID
// --------------------------------------------------

func (id LinkID) String() string { return uuid.UUID(id).String() }
func (id LinkID) IsZero() bool   { return uuid.UUID(id) == uuid.Nil }

func (id LinkID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *LinkID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id LinkID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }
func (id *LinkID) Scan(src any) error        { return (*uuid.UUID)(id).Scan(src) }
func (LinkID) GormDataType() string          { return "uuid" }
