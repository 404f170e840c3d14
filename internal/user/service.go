package user

import (
	"database/sql"
	"errors"
	"microblog/internal/auth"
	"microblog/internal/events"
	"microblog/internal/observability"
	"microblog/internal/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

var (
	// ErrDuplicateIdentity means the username or email is already taken.
	ErrDuplicateIdentity = errors.New("username or email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong
	// password so a login failure never reveals which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const uniqueViolation = "23505"

type UserService struct {
	repo      UserRepositoryInterface
	db        *sql.DB
	publisher events.PublisherInterface
}

type UserServiceInterface interface {
	Register(username, email, password string) (*User, error)
	Authenticate(email, password string) (*User, error)
	GetUserByID(id int) (*User, error)
}

func NewUserService(repo UserRepositoryInterface, db *sql.DB, publisher events.PublisherInterface) UserServiceInterface {
	return &UserService{
		repo:      repo,
		db:        db,
		publisher: publisher,
	}
}

// Register hashes the password and inserts the user. Uniqueness is
// decided by the database's unique indexes, so two concurrent
// registrations with the same email race on the index and exactly one
// wins.
func (s *UserService) Register(username, email, password string) (*User, error) {
	hashedPassword, err := auth.GeneratePasswordHash(password)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash password")
		return nil, errors.New("failed to hash password")
	}

	newUser := &User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
	}

	if err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		id, err := s.repo.Create(tx, newUser)
		if err != nil {
			return err
		}
		newUser.ID = id
		return nil
	}); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}

	observability.GlobalMetrics.UsersRegisteredTotal.Inc()

	if s.publisher != nil {
		if err := s.publisher.Publish(&events.Event{
			Type:     events.UserRegistered,
			UserID:   newUser.ID,
			Username: newUser.Username,
			Email:    newUser.Email,
		}); err != nil {
			// The user is already committed; the event is best effort.
			logrus.WithError(err).Warn("Failed to publish user.registered event")
		}
	}

	return newUser, nil
}

// Authenticate resolves the email and verifies the password digest.
func (s *UserService) Authenticate(email, password string) (*User, error) {
	userData, err := s.repo.GetByEmail(s.db, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			observability.GlobalMetrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.ComparePasswordHash([]byte(userData.Password), password); err != nil {
		observability.GlobalMetrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}

	observability.GlobalMetrics.LoginsTotal.WithLabelValues("success").Inc()
	return userData, nil
}

// GetUserByID retrieves user by ID
func (s *UserService) GetUserByID(id int) (*User, error) {
	return s.repo.GetByID(s.db, id)
}
