package testenv

import "github.com/conduit-demo/app/internal/crypto"

// GenerateSecret returns a new random signing key (32 bytes, standard base64) for one run.
func GenerateSecret() (string, error) {
	return crypto.GenerateSecretKey()
}
