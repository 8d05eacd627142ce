package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,80}$`)

var reservedUsernames = map[string]struct{}{
	"admin":   {},
	"api":     {},
	"auth":    {},
	"me":      {},
	"metrics": {},
	"posts":   {},
	"tags":    {},
	"users":   {},
	"login":   {},
	"signup":  {},
	"search":  {},
}

// ValidateUsername validates username format and reserved names.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-80 characters and contain only letters, numbers, underscores, and hyphens")
	}
	if _, exists := reservedUsernames[strings.ToLower(username)]; exists {
		return fmt.Errorf("username is reserved")
	}
	return nil
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks the email shape. Deliverability is the mail
// provider's problem.
func ValidateEmail(email string) error {
	if len(email) > 120 {
		return fmt.Errorf("email must not exceed 120 characters")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email address is not valid")
	}
	return nil
}
