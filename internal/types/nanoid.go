package types

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// Alphabet used for nanoid generation (alphanumeric)
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateResolutionID generates a unique 12-character random ID for a resolution report.
func GenerateResolutionID() string {
	const length = 12
	const alphabetLen = 62 // len(alphabet)

	result := make([]byte, length)
	for i := range result {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(alphabetLen)))
		result[i] = alphabet[n.Int64()]
	}

	return string(result)
}

// IdentityFingerprint returns a deterministic 20-character fingerprint of an identity's
// name and path. Equal identities resolved from different requests share a fingerprint.
func IdentityFingerprint(name string, path []string) string {
	content := fmt.Sprintf("%s:%s", name, strings.Join(path, "/"))
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])[:20]
}
