package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewUserID generates an opaque user identifier.
func NewUserID() string {
	return newID("user")
}

// NewSoundID generates an opaque sound identifier.
func NewSoundID() string {
	return newID("sound")
}

func newID(prefix string) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%s_%s", prefix, hex[:12])
}
