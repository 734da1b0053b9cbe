package domain

import (
	"strings"
	"time"
)

// User is a registered faculty member. Records are immutable after creation.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Department   string    `json:"department"`
	CreatedAt    time.Time `json:"createdAt"`
}

// institutional email domains accepted at registration.
var allowedEmailSuffixes = []string{".edu", ".ac.in"}

// IsInstitutionalEmail reports whether the address belongs to a college domain.
func IsInstitutionalEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	for _, suffix := range allowedEmailSuffixes {
		if strings.HasSuffix(email, suffix) {
			return true
		}
	}
	return false
}

// Claims is the identity embedded in a session token.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
