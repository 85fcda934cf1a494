package service

import (
	"database/sql"
	"errors"
	"go-session-api/logger"
	"go-session-api/model"
	"go-session-api/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken signals a duplicate registration.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so a caller cannot probe which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService handles registration and login. It is glue around the
// credential store; session issuance belongs to the SessionManager.
type AuthService struct {
	users repository.IUserRepository
}

func NewAuthService(users repository.IUserRepository) *AuthService {
	return &AuthService{users: users}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Register creates a new user with the default role. Returns ErrEmailTaken
// when the email is already registered.
func (s *AuthService) Register(req model.RegisterRequest) (*model.User, error) {
	_, err := s.users.GetUserByEmail(req.Email)
	if err == nil {
		logger.Log.WithField("email", req.Email).Info("Registration rejected, email taken")
		return nil, ErrEmailTaken
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	hashedPassword, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Name:     req.Name,
		Role:     string(model.RoleUser),
		Password: hashedPassword,
	}
	if err := s.users.CreateUser(user); err != nil {
		if err == repository.ErrDuplicateEmail {
			// Lost the race with a concurrent registration for the same email.
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	logger.Log.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

// Login verifies the credentials against the stored bcrypt hash.
func (s *AuthService) Login(email, password string) (*model.User, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.CheckPasswordHash(password, user.Password) {
		logger.Log.WithField("user_id", user.ID).Info("Login rejected, wrong password")
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
