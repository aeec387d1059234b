// Package validator holds the domain validation rules shared by the
// serialization layer and the services.
package validator

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.@+-]+$`)

var (
	ErrUsernameMe    = errors.New(`username "me" is reserved`)
	ErrUsernameChars = errors.New("username may only contain letters, digits and @/./+/-/_")
	ErrFutureYear    = errors.New("release year is in the future")
	ErrEmptyGenre    = errors.New("genre slug must not be empty")
)

// ValidateUsername rejects the reserved name "me" and anything outside
// the allowed character set.
func ValidateUsername(name string) error {
	if name == "me" {
		return ErrUsernameMe
	}
	if !usernamePattern.MatchString(name) {
		return ErrUsernameChars
	}
	return nil
}

// ValidateYear rejects release years in the future. There is no lower bound.
func ValidateYear(year int) error {
	if current := time.Now().Year(); year > current {
		return fmt.Errorf("%w: %d", ErrFutureYear, year)
	}
	return nil
}

// ValidateGenre rejects empty genre slug references.
func ValidateGenre(slug string) error {
	if slug == "" {
		return ErrEmptyGenre
	}
	return nil
}
