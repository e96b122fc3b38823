package identity

import "github.com/google/uuid"

// Generator produces unique opaque identifiers for new records.
// Injected so tests can pin IDs and so the format stays a storage detail.
type Generator interface {
	NewID() string
}

type uuidGenerator struct{}

// NewUUIDGenerator returns a Generator backed by random UUIDv4 strings.
func NewUUIDGenerator() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}
