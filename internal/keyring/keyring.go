package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/studyweek/internal/constants"
)

var (
	ErrNotFound           = errors.New("no connection string stored in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	ErrEmpty              = errors.New("connection string cannot be empty")
)

// user is the keyring account; tests swap it to avoid touching real entries.
var user = constants.DefaultKeyringUser

// GetConnectionString returns the stored PostgreSQL connection string.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString stores connStr. Callers validate it first; this
// package only refuses empty values.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return ErrEmpty
	}
	if err := keyring.Set(constants.AppName, user, connStr); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	return nil
}

func DeleteConnectionString() error {
	err := keyring.Delete(constants.AppName, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	return nil
}

// IsAvailable probes the keyring with a read of a key that never exists.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// Resolve picks the storage target: an explicit value wins, otherwise the
// keyring entry, otherwise fallback.
func Resolve(explicit, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if connStr, err := GetConnectionString(); err == nil && connStr != "" {
		return connStr
	}
	return fallback
}
