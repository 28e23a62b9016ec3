// secret.go generates and stores the symmetric key used to sign access tokens.
//
// The key is kept base64 (standard encoding) so that it can be passed around in the SECRET_KEY env var.

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
)

// SecretKeySize is the number of random bytes in a generated secret key
const SecretKeySize = 32

// GenerateSecretKey returns a new random key, base64 encoded.
func GenerateSecretKey() (string, error) {
	secret := make([]byte, SecretKeySize)
	if _, err := rand.Read(secret); err != nil {
		return "", WrapInternalError(err, "failed to read random bytes")
	}
	return base64.StdEncoding.EncodeToString(secret), nil
}

// DecodeSecretKey decodes a base64 secret and checks it is long enough to sign tokens.
func DecodeSecretKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, WrapKeyError(err, "secret key is not valid base64")
	}
	if len(key) < SecretKeySize {
		return nil, NewKeyError(fmt.Sprintf("secret key must be at least %d bytes, got %d", SecretKeySize, len(key)))
	}
	return key, nil
}

// SaveSecretKeyToFile writes the encoded secret to baseDir/filename with owner-only permissions.
//
// Parameters:
//   - baseDir: The base directory to scope file access (e.g., "./secrets")
//   - filename: The filename within the base directory (e.g., "secret.key")
func SaveSecretKeyToFile(encoded, baseDir, filename string) error {
	if _, err := DecodeSecretKey(encoded); err != nil {
		return err
	}

	root, err := os.OpenRoot(baseDir)
	if err != nil {
		return fmt.Errorf("failed to open root directory %s: %w", baseDir, err)
	}
	defer root.Close()

	f, err := root.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	if _, err := f.WriteString(encoded + "\n"); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
