package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// IdempotencyHash derives the opaque cache key for a mutating request from
// the acting user, the client-supplied Idempotency-Key header and the raw
// request body. The same triple always maps to the same key, so a retried
// request replays the stored reply instead of re-executing.
func IdempotencyHash(userID int, idempotencyKey string, body []byte) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%s:%s", userID, idempotencyKey, body)))
	return hex.EncodeToString(sum[:])
}
