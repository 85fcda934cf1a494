// file: service/auth_service_test.go

package service

import (
	"database/sql"
	"errors"
	"go-session-api/model"
	"go-session-api/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserRepo) GetUserByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// TestAuthService_HashAndCheckPassword ensures that password hashing and verification methods work correctly.
func TestAuthService_HashAndCheckPassword(t *testing.T) {
	authService := NewAuthService(nil)
	password := "mySecretPassword123"

	hashedPassword, err := authService.HashPassword(password)
	require.NoError(t, err)
	assert.NotEqual(t, password, hashedPassword)

	assert.True(t, authService.CheckPasswordHash(password, hashedPassword))
	assert.False(t, authService.CheckPasswordHash("notMyPassword", hashedPassword))
}

func TestAuthService_Register(t *testing.T) {
	req := model.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "pw123456"}

	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByEmail", "ann@x.com").Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("CreateUser", mock.AnythingOfType("*model.User")).Return(nil).Once()

		authService := NewAuthService(mockRepo)
		user, err := authService.Register(req)

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "ann@x.com", user.Email)
		assert.Equal(t, "Ann", user.Name)
		assert.Equal(t, string(model.RoleUser), user.Role)
		// The stored password is a hash, never the plaintext.
		assert.NotEqual(t, req.Password, user.Password)
		assert.True(t, authService.CheckPasswordHash(req.Password, user.Password))
		mockRepo.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByEmail", "ann@x.com").Return(&model.User{Email: "ann@x.com"}, nil).Once()

		authService := NewAuthService(mockRepo)
		_, err := authService.Register(req)

		assert.Equal(t, ErrEmailTaken, err)
		mockRepo.AssertNotCalled(t, "CreateUser")
	})

	t.Run("lost insert race maps to email taken", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByEmail", "ann@x.com").Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("CreateUser", mock.AnythingOfType("*model.User")).Return(repository.ErrDuplicateEmail).Once()

		authService := NewAuthService(mockRepo)
		_, err := authService.Register(req)

		assert.Equal(t, ErrEmailTaken, err)
	})

	t.Run("storage error propagates", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		expectedErr := errors.New("database error")
		mockRepo.On("GetUserByEmail", "ann@x.com").Return(nil, expectedErr).Once()

		authService := NewAuthService(mockRepo)
		_, err := authService.Register(req)

		assert.Equal(t, expectedErr, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	authService := NewAuthService(nil)
	hashed, err := authService.HashPassword("pw123456")
	require.NoError(t, err)

	storedUser := &model.User{
		ID:       "u-1",
		Email:    "ann@x.com",
		Name:     "Ann",
		Role:     "user",
		Password: hashed,
	}

	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByEmail", "ann@x.com").Return(storedUser, nil).Once()

		user, err := NewAuthService(mockRepo).Login("ann@x.com", "pw123456")
		require.NoError(t, err)
		assert.Equal(t, "u-1", user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByEmail", "ann@x.com").Return(storedUser, nil).Once()

		_, err := NewAuthService(mockRepo).Login("ann@x.com", "wrongpass")
		assert.Equal(t, ErrInvalidCredentials, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByEmail", "ghost@x.com").Return(nil, sql.ErrNoRows).Once()

		_, err := NewAuthService(mockRepo).Login("ghost@x.com", "pw123456")
		assert.Equal(t, ErrInvalidCredentials, err)
	})

	t.Run("storage error propagates", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		expectedErr := errors.New("database error")
		mockRepo.On("GetUserByEmail", "ann@x.com").Return(nil, expectedErr).Once()

		_, err := NewAuthService(mockRepo).Login("ann@x.com", "pw123456")
		assert.Equal(t, expectedErr, err)
	})
}
