package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "Valid password", password: "Password123"},
		{name: "Empty password", password: ""}, // bcrypt can hash empty strings
		{name: "Unicode password", password: "Fädeschnitt42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)
			assert.Contains(t, hash, "$2a$")
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	password := "mySecurePassword123"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	tests := []struct {
		name           string
		hashedPassword string
		password       string
		want           bool
	}{
		{name: "Correct password", hashedPassword: hash, password: password, want: true},
		{name: "Incorrect password", hashedPassword: hash, password: "wrongPassword", want: false},
		{name: "Different case", hashedPassword: hash, password: "MYSECUREPASSWORD123", want: false},
		{name: "Empty password", hashedPassword: hash, password: "", want: false},
		{name: "Invalid hash", hashedPassword: "invalid-hash", password: password, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.hashedPassword, tt.password))
		})
	}
}

func TestHashPassword_Salted(t *testing.T) {
	hash1, err := HashPassword("samePassword1")
	require.NoError(t, err)
	hash2, err := HashPassword("samePassword1")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.True(t, VerifyPassword(hash1, "samePassword1"))
	assert.True(t, VerifyPassword(hash2, "samePassword1"))
}

func TestPasswordPolicy_Check(t *testing.T) {
	strict := PasswordPolicy{MinLength: 8, RequireDigit: true, RequireUpper: true, RequireLower: true}

	tests := []struct {
		name     string
		policy   PasswordPolicy
		password string
		wantRule string
	}{
		{name: "Satisfies all rules", policy: strict, password: "Barber2024", wantRule: ""},
		{name: "Too short", policy: strict, password: "Ab1", wantRule: "min_length"},
		{name: "Missing digit", policy: strict, password: "Barbershop", wantRule: "digit"},
		{name: "Missing uppercase", policy: strict, password: "barber2024", wantRule: "upper"},
		{name: "Missing lowercase", policy: strict, password: "BARBER2024", wantRule: "lower"},
		{name: "Length disabled", policy: PasswordPolicy{RequireDigit: true}, password: "a1", wantRule: ""},
		{name: "Digit disabled", policy: PasswordPolicy{MinLength: 8, RequireUpper: true, RequireLower: true}, password: "Barbershop", wantRule: ""},
		{name: "Everything disabled", policy: PasswordPolicy{}, password: "x", wantRule: ""},
		{name: "Length counts runes", policy: PasswordPolicy{MinLength: 4}, password: "äöüß", wantRule: ""},
		{name: "Exactly bcrypt limit", policy: PasswordPolicy{}, password: strings.Repeat("x", MaxPasswordBytes), wantRule: ""},
		{name: "Over bcrypt limit with everything disabled", policy: PasswordPolicy{}, password: strings.Repeat("x", MaxPasswordBytes+1), wantRule: "max_length"},
		{name: "Limit counts bytes not runes", policy: strict, password: "Ab1" + strings.Repeat("ä", 35), wantRule: "max_length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Check(tt.password)
			if tt.wantRule == "" {
				assert.NoError(t, err)
				return
			}
			var policyErr *PasswordPolicyError
			require.ErrorAs(t, err, &policyErr)
			assert.Equal(t, tt.wantRule, policyErr.Rule)
			assert.NotEmpty(t, policyErr.Message)
		})
	}
}

func TestPasswordPolicy_MessageUsesMinLength(t *testing.T) {
	err := PasswordPolicy{MinLength: 12}.Check("short")
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 12 characters long.", err.Error())
}
