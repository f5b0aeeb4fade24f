package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandomHex returns n random bytes hex-encoded (2n characters).
// Used to bootstrap a signing secret when none is configured.
func GenerateRandomHex(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
