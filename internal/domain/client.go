package domain

import (
	"net/mail"

	"github.com/google/uuid"
)

const (
	maxClientNameLength  = 100
	maxClientEmailLength = 255
)

// Client represents a client entity in the domain layer
// A client owns zero or more transactions; it can only be deleted while it owns none
type Client struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// Validate ensures the client adheres to domain rules
// Returns an error if validation fails
func (c *Client) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Reason: "name is required"}
	}

	if len(c.Name) > maxClientNameLength {
		return &ValidationError{Field: "name", Reason: "name is too long"}
	}

	if c.Email == "" {
		return &ValidationError{Field: "email", Reason: "email is required"}
	}

	if len(c.Email) > maxClientEmailLength {
		return &ValidationError{Field: "email", Reason: "email is too long"}
	}

	if _, err := mail.ParseAddress(c.Email); err != nil {
		return &ValidationError{Field: "email", Reason: "invalid email format"}
	}

	return nil
}
