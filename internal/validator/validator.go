package validator

import (
	"errors"
	"regexp"
)

var (
	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrInvalidSlotNumber = errors.New("invalid slot number")
)

var (
	emailRegex      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	slotNumberRegex = regexp.MustCompile(`^[A-Za-z0-9-]{1,10}$`)
)

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrInvalidPassword
	}
	return nil
}

func ValidateSlotNumber(slotNumber string) error {
	if !slotNumberRegex.MatchString(slotNumber) {
		return ErrInvalidSlotNumber
	}
	return nil
}
