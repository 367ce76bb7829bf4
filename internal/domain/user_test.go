package domain

import (
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	if err := ValidateUsername("alice"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}
	if err := ValidateUsername(""); err != ErrUsernameEmpty {
		t.Errorf("expected ErrUsernameEmpty, got %v", err)
	}
	if err := ValidateUsername(strings.Repeat("a", MaxUsernameLen+1)); err != ErrUsernameTooLong {
		t.Errorf("expected ErrUsernameTooLong, got %v", err)
	}
	if err := ValidateUsername(strings.Repeat("a", MaxUsernameLen)); err != nil {
		t.Errorf("name at the limit rejected: %v", err)
	}
}
