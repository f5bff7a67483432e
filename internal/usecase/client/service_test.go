package client

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jmendoza/cryptowallet-backend/internal/domain"
)

// MockClientRepository is a mock implementation of ClientRepository for testing
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Client), args.Error(1)
}

func (m *MockClientRepository) Update(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreate_ValidClient(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockClientRepository)
	service := NewService(mockRepo)

	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Client")).Return(nil)

	client, err := service.Create(ctx, "Ana Lopez", "ana@example.com")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, client.ID)
	assert.Equal(t, "Ana Lopez", client.Name)
	mockRepo.AssertExpectations(t)
}

func TestCreate_InvalidEmailRejectedBeforePersistence(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockClientRepository)
	service := NewService(mockRepo)

	_, err := service.Create(ctx, "Ana Lopez", "not-an-email")

	assert.True(t, domain.IsValidation(err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_DuplicateEmailSurfaced(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockClientRepository)
	service := NewService(mockRepo)

	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Client")).Return(domain.ErrDuplicateEmail)

	_, err := service.Create(ctx, "Ana Lopez", "ana@example.com")

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUpdate_RequiresAtLeastOneField(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockClientRepository)
	service := NewService(mockRepo)

	_, err := service.Update(ctx, uuid.New(), UpdateInput{})

	assert.True(t, domain.IsValidation(err))
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_PartialNameChange(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockClientRepository)
	service := NewService(mockRepo)

	existing := &domain.Client{ID: uuid.New(), Name: "Ana", Email: "ana@example.com"}
	mockRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*domain.Client")).Return(nil)

	newName := "Ana Maria"
	updated, err := service.Update(ctx, existing.ID, UpdateInput{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Equal(t, "ana@example.com", updated.Email, "email untouched")
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockClientRepository)
	service := NewService(mockRepo)

	knownID := uuid.New()
	unknownID := uuid.New()
	mockRepo.On("GetByID", ctx, knownID).Return(&domain.Client{ID: knownID}, nil)
	mockRepo.On("GetByID", ctx, unknownID).Return(nil, domain.ErrClientNotFound)

	exists, err := service.Exists(ctx, knownID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = service.Exists(ctx, unknownID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDelete_BlockedWhileOwningTransactions(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockClientRepository)
	service := NewService(mockRepo)

	id := uuid.New()
	mockRepo.On("Delete", ctx, id).Return(domain.ErrClientHasTransactions)

	err := service.Delete(ctx, id)

	assert.ErrorIs(t, err, domain.ErrClientHasTransactions)
}
