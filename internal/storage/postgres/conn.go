package postgres

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	pq "github.com/lib/pq"

	"github.com/julianstephens/studyweek/internal/constants"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func isURL(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

// IsConnString reports whether target looks like a PostgreSQL connection
// string rather than a SQLite file path.
func IsConnString(target string) bool {
	if isURL(target) {
		return true
	}
	for _, field := range strings.Fields(target) {
		if k, _, ok := strings.Cut(field, "="); ok && strings.EqualFold(k, "host") {
			return true
		}
	}
	return false
}

// dsnHasKey reports whether a key=value DSN contains key (case-insensitive).
func dsnHasKey(connStr, key string) bool {
	for _, field := range strings.Fields(connStr) {
		k, _, ok := strings.Cut(field, "=")
		if ok && strings.EqualFold(strings.TrimSpace(k), key) {
			return true
		}
	}
	return false
}

func hasParam(connStr, key string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for k := range u.Query() {
			if strings.EqualFold(k, key) {
				return true
			}
		}
		return false
	}
	return dsnHasKey(connStr, key)
}

// withSearchPath pins the session to the application schema unless the
// caller already chose one.
func withSearchPath(connStr string) (string, error) {
	if hasParam(connStr, "search_path") {
		return connStr, nil
	}
	if !isURL(connStr) {
		return strings.TrimSpace(connStr) + " search_path=" + constants.AppName, nil
	}
	u, err := url.Parse(connStr)
	if err != nil {
		return connStr, err
	}
	q := u.Query()
	q.Set("search_path", constants.AppName)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ValidateConnString accepts URI and key=value connection strings and
// rejects any that carry a password; credentials belong in ~/.pgpass or
// PGPASSWORD.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}

	if !isURL(connStr) {
		if dsnHasKey(connStr, "password") {
			return ErrEmbeddedCredentials
		}
		return nil
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	if _, set := u.User.Password(); set {
		return ErrEmbeddedCredentials
	}
	if u.Query().Has("password") {
		return ErrEmbeddedCredentials
	}
	if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
		return fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
	}
	return nil
}
