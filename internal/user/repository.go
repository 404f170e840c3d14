package user

import (
	"database/sql"
	"errors"

	"github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct{}

type UserRepositoryInterface interface {
	Create(tx *sql.Tx, user *User) (int, error)
	GetByID(db *sql.DB, id int) (*User, error)
	GetByEmail(db *sql.DB, email string) (*User, error)
}

func NewUserRepository() UserRepositoryInterface {
	return &UserRepository{}
}

// Create inserts a new user. Unique violations on username or email
// surface as the driver's error so the service can classify them.
func (r *UserRepository) Create(
	tx *sql.Tx,
	user *User,
) (int, error) {
	query := `
		INSERT INTO users (
			username, email, password, created_at
		)
		VALUES ($1, $2, $3, NOW())
		RETURNING id
	`

	var id int
	err := tx.QueryRow(
		query,
		user.Username,
		user.Email,
		user.Password,
	).Scan(&id)

	if err != nil {
		logrus.WithError(err).Error("Failed to create user")
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  id,
		"username": user.Username,
	}).Info("User created successfully")

	return id, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(db *sql.DB, id int) (*User, error) {
	query := `
		SELECT id, username, email, password, created_at
		FROM users
		WHERE id = $1
	`

	user := &User{}
	err := db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logrus.WithField("user_id", id).Warn("User not found")
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).Error("Failed to get user by ID")
		return nil, err
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(db *sql.DB, email string) (*User, error) {
	query := `
		SELECT id, username, email, password, created_at
		FROM users
		WHERE email = $1
	`

	user := &User{}
	err := db.QueryRow(query, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).Error("Failed to get user by email")
		return nil, err
	}

	return user, nil
}
