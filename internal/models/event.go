package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ModeOnline  = "online"
	ModeOffline = "offline"

	FeeTypeFree = "free"
	FeeTypePaid = "paid"

	RegistrationOpen   = "open"
	RegistrationClosed = "closed"

	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

type Event struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Date               time.Time       `json:"date"`
	Time               string          `json:"time"`
	Venue              string          `json:"venue"`
	Category           string          `json:"category"`
	Mode               string          `json:"mode"`
	FeeType            string          `json:"feeType"`
	Fee                decimal.Decimal `json:"fee"`
	RegistrationStatus string          `json:"registrationStatus"`
	Visibility         string          `json:"visibility"`
	CreatedBy          string          `json:"createdBy"`
	CreatedAt          time.Time       `json:"createdAt"`
	RegisteredUsers    []string        `json:"registeredUsers"`
	BookmarkedBy       []string        `json:"bookmarkedBy"`
}

// IsRegistered reports whether userID is in the registration set.
func (e *Event) IsRegistered(userID string) bool {
	return contains(e.RegisteredUsers, userID)
}

// IsBookmarked reports whether userID is in the bookmark set.
func (e *Event) IsBookmarked(userID string) bool {
	return contains(e.BookmarkedBy, userID)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}

	return false
}
