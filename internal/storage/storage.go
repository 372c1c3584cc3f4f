package storage

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrNotCreator           = errors.New("requester is not the event creator")
	ErrMembershipExists     = errors.New("membership already exists")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrProfileNotFound      = errors.New("profile not found")
)

// EventFilter narrows an event listing. Zero values mean "no constraint".
type EventFilter struct {
	Category string
	// Search is matched case-insensitively against the title.
	Search string
	// From and Before bound the event date as [From, Before).
	From   time.Time
	Before time.Time
	// ViewerID sees their own private events in addition to public ones.
	ViewerID string
}

// EventUpdate holds the mutable event fields. Nil fields are left unchanged.
type EventUpdate struct {
	UpdatedAt time.Time

	Title              *string
	Description        *string
	Date               *time.Time
	Time               *string
	Venue              *string
	Category           *string
	Mode               *string
	FeeType            *string
	Fee                *decimal.Decimal
	RegistrationStatus *string
	Visibility         *string
}
