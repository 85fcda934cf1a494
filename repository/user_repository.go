package repository

import (
	"database/sql"
	"errors"
	"go-session-api/model"

	"github.com/lib/pq"
)

// ErrDuplicateEmail is returned when the unique constraint on users.email
// rejects an insert.
var ErrDuplicateEmail = errors.New("email already registered")

// IUserRepository defines the credential-store contract consumed by the
// auth glue.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByEmail(email string) (*model.User, error)
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) CreateUser(user *model.User) error {
	query := `INSERT INTO users (id, email, name, role, password) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.Exec(query, user.ID, user.Email, user.Name, user.Role, user.Password)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT id, email, name, role, password FROM users WHERE email=$1`
	err := r.DB.QueryRow(query, email).Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.Password)
	if err != nil {
		return nil, err // sql.ErrNoRows when the email is unknown
	}
	return user, nil
}
