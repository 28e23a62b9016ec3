// token.go issues and verifies the HS256 signed JWTs used as API access tokens.
//
// The token subject is the user id. Tokens carry iat and exp claims; exp is enforced on verification.

package crypto

import (
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// TokenIssuer signs and verifies access tokens with a symmetric key.
type TokenIssuer struct {
	key []byte
	ttl time.Duration

	// now is overridden in tests
	now func() time.Time
}

// NewTokenIssuer creates a TokenIssuer from a base64 secret (see GenerateSecretKey).
func NewTokenIssuer(encodedSecret string, ttl time.Duration) (*TokenIssuer, error) {
	key, err := DecodeSecretKey(encodedSecret)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		return nil, NewValidationError("token ttl must be positive")
	}
	return &TokenIssuer{key: key, ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token for subject.
func (ti *TokenIssuer) Issue(subject string) (string, error) {
	if subject == "" {
		return "", NewValidationError("token subject is required")
	}

	now := ti.now()
	tok, err := jwt.NewBuilder().
		Subject(subject).
		IssuedAt(now).
		Expiration(now.Add(ti.ttl)).
		Build()
	if err != nil {
		return "", WrapInternalError(err, "failed to build token")
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256(), ti.key))
	if err != nil {
		return "", WrapKeyError(err, "failed to sign token")
	}
	return string(signed), nil
}

// Verify checks the signature and expiry of token and returns its subject.
func (ti *TokenIssuer) Verify(token string) (string, error) {
	if token == "" {
		return "", NewInvalidTokenError("token is empty")
	}

	parsed, err := jwt.Parse([]byte(token),
		jwt.WithKey(jwa.HS256(), ti.key),
		jwt.WithValidate(true),
	)
	if err != nil {
		return "", WrapInvalidTokenError(err, "token verification failed")
	}

	subject, ok := parsed.Subject()
	if !ok || subject == "" {
		return "", NewInvalidTokenError("token has no subject")
	}
	return subject, nil
}
