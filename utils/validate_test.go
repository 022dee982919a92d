package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"user@gmail.com", true},
		{"first.last@sub.example.co", true},
		{"a@[192.168.0.1]", true},
		{"bad-email", false},
		{"", false},
		{"@nodomain.com", false},
		{"user@domain", false},
		{"user@domain.c", false},
		{"two@@signs.com", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, IsValidEmail(tc.email), "email %q", tc.email)
	}
}

func TestIsStrongPassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"Password123", true},
		{"aB3456", true},
		{"password", false}, // no digit, no uppercase
		{"PASS1", false},    // too short
		{"PASSWORD1", false},
		{"password1", false},
		{"Password123Password123", false}, // over 20 chars
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, IsStrongPassword(tc.password), "password %q", tc.password)
	}
}
