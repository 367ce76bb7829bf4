// Package domain contains entity types and validation, no transport logic.
package domain

import "errors"

const MaxUsernameLen = 36

var (
	ErrUsernameEmpty   = errors.New("username empty")
	ErrUsernameTooLong = errors.New("username too long")
)

// ValidateUsername checks the display name a client supplies at join time.
// Names are not unique; per-room uniqueness is enforced by the presence
// coordinator, not here.
func ValidateUsername(name string) error {
	if len(name) == 0 {
		return ErrUsernameEmpty
	}
	if len(name) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	return nil
}
