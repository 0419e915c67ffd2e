package gorm

import (
	"github.com/google/uuid"
)

// newID returns id unchanged when already set, otherwise a fresh UUID string
func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}
