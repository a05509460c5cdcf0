package models

import "github.com/google/uuid"

// newID returns the identifier used as primary key by every collection.
func newID() string {
	return uuid.NewString()
}
