package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Typical Signup Password", "TestPass123!@#", false},
		{"Exactly Min Length", "Abcdefghij1!", false},
		{"Exactly Max Length", "A" + strings.Repeat("b", 125) + "1!", false},
		{"Too Short", "Short1!", true},
		{"Too Long", "A" + strings.Repeat("b", 126) + "1!", true},
		{"No Uppercase", "flocksignup12!", true},
		{"No Lowercase", "FLOCKSIGNUP12!", true},
		{"No Digit", "FlockSignup!!", true},
		{"No Special", "FlockSignup123", true},
		{"Digits And Special Only", "1234567890!@", true},
		{"Unicode Letters Count", "ÅngstromPass12!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "night_heron42", false},
		{"Valid With Hyphen", "night-heron", false},
		{"Too Short", "nh", true},
		{"Too Long", strings.Repeat("n", 31), true},
		{"Illegal Chars", "heron@42", true},
		{"Starts With Hyphen", "-heron", true},
		{"Ends With Underscore", "heron_", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	// 254 chars total: 64 local + @ + 185 domain label + ".com" (4)
	emailAt254 := strings.Repeat("a", 64) + "@" + strings.Repeat("b", 185) + ".com"
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "heron@flock.example", false},
		{"Exactly 254 Characters", emailAt254, false},
		{"Invalid Format", "not-an-email", true},
		{"Missing Domain", "heron@", true},
		{"Multiple At Symbols", "heron@@flock.example", true},
		{"Space In Local Part", "night heron@flock.example", true},
		{"Trailing Dot In Domain", "heron@flock.example.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
