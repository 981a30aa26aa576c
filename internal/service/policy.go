package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const minPasswordLength = 8

var ErrWeakPassword = errors.New("password is too weak")

// WeakPasswordError carries the list of rules the candidate password broke.
type WeakPasswordError struct {
	Violations []string
}

func (e *WeakPasswordError) Error() string {
	return fmt.Sprintf("password is too weak: %s", strings.Join(e.Violations, "; "))
}

func (e *WeakPasswordError) Unwrap() error { return ErrWeakPassword }

// PasswordViolations returns the strength rules password fails to meet, empty
// when the password is acceptable.
func PasswordViolations(password string) []string {
	var violations []string

	if len(password) < minPasswordLength {
		violations = append(violations, fmt.Sprintf("must be at least %d characters long", minPasswordLength))
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}

	if !hasUpper {
		violations = append(violations, "must contain an uppercase letter")
	}
	if !hasLower {
		violations = append(violations, "must contain a lowercase letter")
	}
	if !hasDigit {
		violations = append(violations, "must contain a digit")
	}
	if !hasSymbol {
		violations = append(violations, "must contain a symbol")
	}

	return violations
}
