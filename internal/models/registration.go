package models

import "time"

// Membership kinds stored in the ledger.
const (
	KindRegistration = "registration"
	KindBookmark     = "bookmark"
)

const (
	RegistrationRegistered = "Registered"
	RegistrationAttended   = "Attended"
	RegistrationCompleted  = "Completed"
	RegistrationCancelled  = "Cancelled"
)

type Registration struct {
	UserID           string    `json:"userId"`
	EventID          string    `json:"eventId"`
	Status           string    `json:"status"`
	RegistrationDate time.Time `json:"registrationDate"`
}

func IsRegistrationStatus(status string) bool {
	switch status {
	case RegistrationRegistered, RegistrationAttended, RegistrationCompleted, RegistrationCancelled:
		return true
	}

	return false
}
