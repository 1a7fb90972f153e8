package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12
)

// Prefixes for different entity types (Stripe-style)
const (
	PrefixExtension = "ext"
	PrefixCallerID  = "cid"
	PrefixTicket    = "tkt"
)

// Generate creates a random short ID with the specified length using
// Base62 encoding. The output is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[n.Int64()]
	}

	return string(result), nil
}

// MustGenerate creates a random short ID and panics on error.
func MustGenerate(length int) string {
	s, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return s
}

// GenerateWithPrefix creates a prefixed ID in the format "prefix_random".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	s, err := Generate(length)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, s), nil
}

// NewExtensionID generates an extension identifier (ext_xxx).
func NewExtensionID() (string, error) {
	return GenerateWithPrefix(PrefixExtension, DefaultLength)
}

// NewCallerIDID generates a caller ID identifier (cid_xxx).
func NewCallerIDID() (string, error) {
	return GenerateWithPrefix(PrefixCallerID, DefaultLength)
}

// NewTicketID generates a ticket identifier (tkt_xxx).
func NewTicketID() (string, error) {
	return GenerateWithPrefix(PrefixTicket, DefaultLength)
}

// ValidatePrefix checks that the ID carries the given entity prefix and
// a non-empty random part.
func ValidatePrefix(id, prefix string) error {
	if !strings.HasPrefix(id, prefix+"_") || len(id) <= len(prefix)+1 {
		return fmt.Errorf("invalid ID %q: expected prefix %q", id, prefix)
	}
	return nil
}
