package extension

import (
	"fmt"

	"centrex/internal/shared/id"
)

// SecretLength is the length of generated registration secrets.
const SecretLength = 20

// GenerateSecret produces a random registration credential for operators
// who leave the secret blank. Base62, cryptographically random.
func GenerateSecret() (string, error) {
	secret, err := id.Generate(SecretLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate extension secret: %w", err)
	}
	return secret, nil
}
