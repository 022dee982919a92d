package utils

import (
	"regexp"
	"unicode"
)

// emailRe accepts local@domain where domain is either dot-separated labels
// ending in at least two letters, or a bracketed IPv4 literal.
var emailRe = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

// IsValidEmail reports whether s looks like a valid email address.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsStrongPassword reports whether s is 6 to 20 characters long with at
// least one digit, one lowercase and one uppercase letter.
func IsStrongPassword(s string) bool {
	runes := []rune(s)
	if len(runes) < 6 || len(runes) > 20 {
		return false
	}
	var hasDigit, hasLower, hasUpper bool
	for _, r := range runes {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	return hasDigit && hasLower && hasUpper
}
