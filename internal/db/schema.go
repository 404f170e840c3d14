package db

import (
	"database/sql"

	"github.com/sirupsen/logrus"
)

// EnsureSchema creates the users and posts tables on first boot.
// Username and email uniqueness live on unique indexes so concurrent
// registrations are arbitrated by the database, not by the app.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(50) NOT NULL,
			email VARCHAR(255) NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT users_username_key UNIQUE (username),
			CONSTRAINT users_email_key UNIQUE (email)
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS posts_user_id_idx ON posts (user_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			logrus.WithError(err).Error("Failed to apply schema statement")
			return err
		}
	}

	logrus.Info("Database schema ensured")
	return nil
}
