// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

// Package credential derives and verifies salted password hashes. Only the
// derived hash and the salt are ever stored; the plaintext password never
// leaves the caller.
package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltLength is the minimum (and generated) salt size in raw bytes.
	SaltLength = 16
	// iterations and keyLength are fixed; changing them invalidates every
	// stored hash.
	iterations = 120_000
	keyLength  = 32
)

// ErrSaltTooShort is returned when a salt decodes to fewer than SaltLength bytes.
var ErrSaltTooShort = errors.New("salt shorter than minimum length")

// GenerateSalt produces a new cryptographically random salt, base64-encoded.
func GenerateSalt() (string, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// Hash derives a storage-safe hash from the password and a base64-encoded
// salt using PBKDF2-HMAC-SHA256. It fails rather than degrade: a malformed
// or undersized salt is an error, never a weak hash.
func Hash(password []byte, salt string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("failed to decode salt: %w", err)
	}
	if len(raw) < SaltLength {
		return "", ErrSaltTooShort
	}
	key := pbkdf2.Key(password, raw, iterations, keyLength, sha256.New)
	return base64.StdEncoding.EncodeToString(key), nil
}

// Verify re-derives the hash from the candidate password and salt and
// compares it against the expected hash in constant time. Any internal
// failure counts as "does not match"; Verify never reports a false success.
func Verify(expectedHash string, password []byte, salt string) bool {
	derived, err := Hash(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(derived), []byte(expectedHash)) == 1
}
