package goscribe

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func validateCredentials(creds Credentials) error {
	if !emailPattern.MatchString(creds.Email) {
		return invalid("please enter a valid email")
	}
	if creds.Password == "" {
		return invalid("password is required")
	}
	return nil
}

func validateRegistration(reg Registration) error {
	if len(strings.TrimSpace(reg.Name)) < 2 {
		return invalid("name must be at least 2 characters")
	}
	if len(strings.TrimSpace(reg.Username)) < 3 {
		return invalid("username must be at least 3 characters")
	}
	if !phonePattern.MatchString(reg.Phone) {
		return invalid("phone number must be 10 digits")
	}
	if !emailPattern.MatchString(reg.Email) {
		return invalid("please enter a valid email")
	}
	if len(reg.Password) < 8 {
		return invalid("password must be at least 8 characters")
	}
	return nil
}

// Validate checks the form rules for a post payload.
func (in PostInput) Validate() error {
	return validatePostInput(in)
}

// Validate checks the form rules for a profile update payload.
func (in ProfileInput) Validate() error {
	return validateProfileInput(in)
}

func validatePostInput(in PostInput) error {
	if len(strings.TrimSpace(in.Title)) < 3 {
		return invalid("title must be at least 3 characters")
	}
	if len(strings.TrimSpace(in.Content)) < 10 {
		return invalid("content must be at least 10 characters")
	}
	if len(in.Sections) < 1 {
		return invalid("at least one section is required")
	}
	for _, s := range in.Sections {
		if strings.TrimSpace(s.Title) == "" {
			return invalid("section title is required")
		}
		if strings.TrimSpace(s.Body) == "" {
			return invalid("section body is required")
		}
	}
	return nil
}

func validateProfileInput(in ProfileInput) error {
	if len(strings.TrimSpace(in.Name)) < 2 {
		return invalid("name must be at least 2 characters")
	}
	if len(strings.TrimSpace(in.Username)) < 3 {
		return invalid("username must be at least 3 characters")
	}
	if !phonePattern.MatchString(in.Phone) {
		return invalid("phone number must be 10 digits")
	}
	if !emailPattern.MatchString(in.Email) {
		return invalid("please enter a valid email")
	}
	return nil
}
