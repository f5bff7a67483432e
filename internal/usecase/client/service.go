package client

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jmendoza/cryptowallet-backend/internal/domain"
)

// UpdateInput carries a partial client update; nil fields are left unchanged
type UpdateInput struct {
	Name  *string
	Email *string
}

// Service handles client registration and maintenance. The ledger core only
// consumes Exists and the display fields; the rest backs the client API.
type Service struct {
	ClientRepo domain.ClientRepository
}

// NewService creates a new client Service instance
func NewService(clientRepo domain.ClientRepository) *Service {
	return &Service{ClientRepo: clientRepo}
}

// Create registers a new client
func (s *Service) Create(ctx context.Context, name, email string) (*domain.Client, error) {
	client := &domain.Client{
		ID:    uuid.New(),
		Name:  name,
		Email: email,
	}

	if err := client.Validate(); err != nil {
		return nil, err
	}

	if err := s.ClientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// Get retrieves a client by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	return s.ClientRepo.GetByID(ctx, id)
}

// List retrieves all clients
func (s *Service) List(ctx context.Context) ([]*domain.Client, error) {
	return s.ClientRepo.List(ctx)
}

// Exists reports whether a client with the given ID is registered
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.ClientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Update applies a partial update; at least one field must be provided
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.Client, error) {
	if input.Name == nil && input.Email == nil {
		return nil, &domain.ValidationError{Field: "body", Reason: "at least one field must be provided"}
	}

	client, err := s.ClientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Email != nil {
		client.Email = *input.Email
	}

	if err := client.Validate(); err != nil {
		return nil, err
	}

	if err := s.ClientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// Delete removes a client; it fails while the client still owns transactions
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.ClientRepo.Delete(ctx, id)
}
