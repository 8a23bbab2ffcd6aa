package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
// Used for every public entity identifier (loans, wallets, methods, ...).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewUUID returns a canonical lowercase UUIDv4 string, used where callers
// expect the dashed form (notification ids, Ax-Request-Id values).
func NewUUID() string {
	return uuid.NewString()
}
