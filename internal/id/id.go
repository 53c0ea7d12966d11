// Package id generates identifiers for credentials, claims and bundles.
package id

import (
	"time"

	"github.com/google/uuid"
)

// New returns a new globally-unique identifier.
// Identifiers are UUIDv7 so their lexical order follows creation time.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Time returns the creation instant encoded into the identifier.
func Time(s string) (time.Time, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return time.Time{}, err
	}

	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec).UTC(), nil
}
