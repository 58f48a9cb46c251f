// Package migrate applies the embedded MongoDB index migrations using golang-migrate.
package migrate

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"org-access-registry/internal/db"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// ErrNoChange is returned when Up/Down has nothing to do (already at target version).
var ErrNoChange = migrate.ErrNoChange

// MigrationURL returns uri with its path replaced by database, which is where the mongodb
// driver reads the target database from. Query parameters are kept.
func MigrationURL(uri, database string) (string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", errors.New("MONGODB_URI is not set; create a .env from .env.example or set MONGODB_URI")
	}
	database = strings.TrimSpace(database)
	if database == "" {
		return "", errors.New("MONGODB_DATABASE is not set")
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return "", fmt.Errorf("invalid MongoDB URI scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("invalid MongoDB URI: missing host")
	}
	u.Path = "/" + database
	return u.String(), nil
}

// Run applies migrations in the given direction against database on the server at uri.
// direction must be "up" or "down". Returns nil on success and when already at the target version.
func Run(uri, database, direction string) error {
	if direction != "up" && direction != "down" {
		return fmt.Errorf("direction must be up or down, got %q", direction)
	}
	target, err := MigrationURL(uri, database)
	if err != nil {
		return err
	}

	sourceDriver, err := iofs.New(db.MigrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, target)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
