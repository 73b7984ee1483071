// Package validation provides field-level input validation shared by the
// submission and catalog services.
package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

// ValidateEmail checks that the address parses and has a host part.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email address")
	}
	if !strings.Contains(email, "@") || strings.HasSuffix(email, "@") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidateURL checks that raw is a syntactically valid absolute http(s) URL.
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must be absolute (http or https)")
	}
	if u.Host == "" {
		return fmt.Errorf("URL must include a host")
	}
	return nil
}

// ValidateUsername enforces the account name format.
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < 3 || n > 30 {
		return fmt.Errorf("username must be 3-30 characters")
	}
	for _, r := range username {
		if !isUsernameRune(r) {
			return fmt.Errorf("username may only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	}
	return false
}

// ValidatePassword enforces a minimum password strength.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must be at most 128 characters")
	}
	return nil
}

// MinLen checks that the trimmed value has at least min characters.
func MinLen(value string, min int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) >= min
}
