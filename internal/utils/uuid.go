package utils

import "github.com/google/uuid"

// UUIDGenerator produces idempotency keys for entity create requests. V7
// UUIDs are preferred for their time ordering; if V7 generation fails the
// generator falls back to a random V4.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
