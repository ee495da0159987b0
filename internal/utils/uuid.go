package utils

import "github.com/google/uuid"

// UUIDGenerator produces request ids. Version 7 ids are time-ordered, which
// keeps log files sortable by request id.
type UUIDGenerator struct{}

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
