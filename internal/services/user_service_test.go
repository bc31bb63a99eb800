package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hobbyhub/internal/models"
	"hobbyhub/internal/services"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Insert(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func TestUserService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	// The caller's document is stored verbatim, arbitrary fields included.
	user := models.User{"name": "Alice", "email": "alice@example.com", "favoriteHobby": "chess"}
	mockRepo.On("Insert", mock.Anything, user).Return("65f000000000000000000003", nil).Once()

	id, err := service.RegisterUser(context.Background(), user)
	assert.NoError(t, err)
	assert.Equal(t, "65f000000000000000000003", id)
	mockRepo.AssertExpectations(t)
}

func TestUserService_RegisterUser_RepoError(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	user := models.User{"name": "Alice"}
	mockRepo.On("Insert", mock.Anything, user).Return("", fmt.Errorf("connection reset")).Once()

	id, err := service.RegisterUser(context.Background(), user)
	assert.Empty(t, id)
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}
