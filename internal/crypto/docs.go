// Package crypto provides the credential primitives of the conduit server:
// argon2id password hashes, HS256 access tokens and the SECRET_KEY they are signed with.
//
// Errors returned by the package are *CryptoError values carrying an ErrorCode.
package crypto
