package service

import (
	"errors"

	"github.com/marcochiappo/Crimcuts/pkg/util"
)

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidRating      = errors.New("rating must be an integer between 1 and 5")
	ErrBarberNotFound     = errors.New("barber not found")
)

// ValidationError rejects form input. Message is shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

var userMessages = map[error]string{
	ErrMissingFields:      "All fields are required.",
	ErrPasswordMismatch:   "Passwords do not match. Please try again.",
	ErrUsernameExists:     "Username already exists. Please choose a different one.",
	ErrInvalidCredentials: "Invalid username or password.",
	ErrInvalidRating:      "Please select a rating between 1 and 5.",
	ErrBarberNotFound:     "Barber not found",
}

// UserMessage returns the text shown on a page for err. The second result is
// false for errors that are not meant for users.
func UserMessage(err error) (string, bool) {
	for sentinel, msg := range userMessages {
		if errors.Is(err, sentinel) {
			return msg, true
		}
	}

	var policyErr *util.PasswordPolicyError
	if errors.As(err, &policyErr) {
		return policyErr.Message, true
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message, true
	}
	return "", false
}
