// Package store implements the Postgres-backed repositories the bot consumes.
package store

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrNotFound reports that a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// IsNotFound reports whether err is a missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

const uniqueViolation = "23505"

// tokenAttempts bounds insert retries on unique violations: link-token
// collisions and concurrent episode-order draws.
const tokenAttempts = 3

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// newToken builds a short URL-safe share token: "<prefix>_<random>".
func newToken(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + raw[:16]
}
