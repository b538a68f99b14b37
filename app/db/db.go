package db

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// GenerateID generates new uuid and encodes it to base64
func GenerateID() string {
	id := [16]byte(uuid.New())
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// Storage defines method provided by database interfaces
type Storage interface {
	// Increment adds one lookup and returns new total
	Increment() (int64, error)
	// Total returns number of lookups
	Total() (int64, error)
}
