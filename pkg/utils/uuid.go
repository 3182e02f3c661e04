package utils

import "github.com/google/uuid"

// GenerateID returns a new random ID for entity primary keys.
func GenerateID() string {
	return uuid.New().String()
}
