// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

// Package password packs and verifies salted password hashes in the portable
// textual form "sha256$<salt-hex>$<digest-hex>".
//
// The leading tag names the hash algorithm so the format can be rotated
// without breaking credentials already stored; currently sha256 is the only
// tag ever produced or accepted. Both functions are pure apart from the one
// CSPRNG read during packing.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
)

// AlgorithmTag identifies the hash algorithm of every credential
// produced by [Pack].
const AlgorithmTag = "sha256"

// saltSize is the entropy of a fresh salt in bytes; rendered as hex it
// doubles to 32 characters.
const saltSize = 16

// packedPattern is the strict shape of a stored credential: known tag,
// hex salt of any positive length, and a digest of exactly 64 hex chars
// (SHA-256). Anything else is rejected during verification.
var packedPattern = regexp.MustCompile(`^sha256\$([0-9a-fA-F]+)\$([0-9a-f]{64})$`)

// Pack hashes plain with a fresh random salt and serializes the result as
// "sha256$<salt-hex>$<digest-hex>". Two calls with the same plaintext yield
// different packed strings because each call draws a new salt.
//
// Returns an error only if the OS CSPRNG read fails.
func Pack(plain string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("error generating credential salt: %w", err)
	}

	saltHex := hex.EncodeToString(salt)
	return fmt.Sprintf("%s$%s$%s", AlgorithmTag, saltHex, digest(saltHex, plain)), nil
}

// Verify reports whether plain matches the stored packed credential.
//
// It fails closed: a credential that does not match the expected
// tag/salt/digest shape yields false, never an error. The digest comparison
// is constant-time to avoid leaking match length through timing.
func Verify(plain, packed string) bool {
	m := packedPattern.FindStringSubmatch(packed)
	if m == nil {
		return false
	}

	saltHex, storedDigest := m[1], m[2]
	computed := digest(saltHex, plain)

	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedDigest)) == 1
}

// digest computes SHA-256 over the hex salt concatenated with the plaintext
// and renders it as lowercase hex. The salt participates in its textual hex
// form, matching the stored wire format.
func digest(saltHex, plain string) string {
	sum := sha256.Sum256([]byte(saltHex + plain))
	return hex.EncodeToString(sum[:])
}
