package util

import (
	"fmt"
	"unicode"
)

// PasswordPolicy describes the registration password rules. Each rule can be
// switched off on its own; MinLength <= 0 disables the length rule.
type PasswordPolicy struct {
	MinLength    int
	RequireDigit bool
	RequireUpper bool
	RequireLower bool
}

// MaxPasswordBytes is the longest input bcrypt accepts. It applies whatever the
// policy toggles are.
const MaxPasswordBytes = 72

// PasswordPolicyError is returned when a password breaks one of the rules.
// Message is safe to show to the user.
type PasswordPolicyError struct {
	Rule    string
	Message string
}

func (e *PasswordPolicyError) Error() string {
	return e.Message
}

// Check returns the first rule the password violates, in the order
// min length, max bytes, digit, uppercase, lowercase.
func (p PasswordPolicy) Check(password string) error {
	if p.MinLength > 0 && len([]rune(password)) < p.MinLength {
		return &PasswordPolicyError{
			Rule:    "min_length",
			Message: fmt.Sprintf("Password must be at least %d characters long.", p.MinLength),
		}
	}

	if len(password) > MaxPasswordBytes {
		return &PasswordPolicyError{
			Rule:    "max_length",
			Message: fmt.Sprintf("Password must be at most %d bytes.", MaxPasswordBytes),
		}
	}

	var hasDigit, hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}

	if p.RequireDigit && !hasDigit {
		return &PasswordPolicyError{Rule: "digit", Message: "Password must contain at least one number."}
	}
	if p.RequireUpper && !hasUpper {
		return &PasswordPolicyError{Rule: "upper", Message: "Password must contain at least one uppercase letter."}
	}
	if p.RequireLower && !hasLower {
		return &PasswordPolicyError{Rule: "lower", Message: "Password must contain at least one lowercase letter."}
	}
	return nil
}
