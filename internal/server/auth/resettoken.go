package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/wellnessdiary/api/internal/common"
)

// resetTokenBytes is the entropy of a raw reset token; the hex form the
// user receives is twice as long.
const resetTokenBytes = 20

// NewResetToken generates a random password-reset token and returns the raw
// form (delivered to the user out-of-band) together with its SHA-256 hex
// digest (the only thing that is persisted).
func NewResetToken() (raw string, hashed string, err error) {
	raw, err = common.MakeRandHexString(resetTokenBytes)
	if err != nil {
		return "", "", err
	}
	return raw, HashResetToken(raw), nil
}

// HashResetToken re-derives the stored digest from a raw reset token.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
