// Copyright (c) 2025 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package keymanager

import (
	"crypto"
	"fmt"
)

// HashType represents the hash algorithm bound to a signature scheme.
// HashType_Unknown is the unset sentinel and is never acceptable; SHA-1 is
// defined so descriptors carrying it can be named in errors, but no manager
// allow-list includes it.
type HashType int

const (
	HashType_Unknown HashType = iota
	HashType_SHA1
	HashType_SHA256
	HashType_SHA384
	HashType_SHA512
)

func (h HashType) String() string {
	switch h {
	case HashType_SHA1:
		return "sha-1"
	case HashType_SHA256:
		return "sha-256"
	case HashType_SHA384:
		return "sha-384"
	case HashType_SHA512:
		return "sha-512"
	}

	return fmt.Sprintf("(unknown %d)", h)
}

// CryptoHash maps a HashType onto the stdlib identifier. Unknown values map
// to crypto.Hash(0), which is never Available.
func (h HashType) CryptoHash() crypto.Hash {
	switch h {
	case HashType_SHA1:
		return crypto.SHA1
	case HashType_SHA256:
		return crypto.SHA256
	case HashType_SHA384:
		return crypto.SHA384
	case HashType_SHA512:
		return crypto.SHA512
	}

	return crypto.Hash(0)
}

// HashTypeFromString parses the String form back into a HashType. Used when
// hash choices arrive via configuration maps.
func HashTypeFromString(name string) (HashType, error) {
	switch name {
	case "sha-1", "sha1":
		return HashType_SHA1, nil
	case "sha-256", "sha256":
		return HashType_SHA256, nil
	case "sha-384", "sha384":
		return HashType_SHA384, nil
	case "sha-512", "sha512":
		return HashType_SHA512, nil
	}

	return HashType_Unknown, fmt.Errorf("unknown hash type %q: %w", name, ErrInvalidParameter)
}
