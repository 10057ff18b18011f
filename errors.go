// Copyright (c) 2025 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package keymanager

import (
	"errors"
)

// Errors returned by key managers and the registry. Validation failures are
// expected conditions: they are always returned, never panicked, and wrap
// one of these values so callers can test with errors.Is.
var (
	// ErrInvalidParameter is returned for malformed arguments and options.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupportedVersion means the key descriptor's version is not the
	// single version the manager supports. There is no compatibility path.
	ErrUnsupportedVersion = errors.New("unsupported key version")

	// ErrMalformedModulus means the modulus bytes do not decode to an
	// unsigned integer a primitive could use.
	ErrMalformedModulus = errors.New("malformed modulus")

	// ErrInsecureModulusSize means the decoded modulus bit length falls
	// outside the manager's accepted range.
	ErrInsecureModulusSize = errors.New("insecure modulus size")

	// ErrUnsupportedHash means the hash choice is not on the manager's
	// allow-list.
	ErrUnsupportedHash = errors.New("unsupported hash algorithm")

	// ErrPrimitiveConstruction means a key passed validation but the
	// underlying cryptography rejected it; the cause is attached.
	ErrPrimitiveConstruction = errors.New("primitive construction failed")

	// ErrUnsupportedOperation is returned by key-creation operations on
	// verification-side managers.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrUnsupportedKeyType means no manager handles the given key type, or
	// a descriptor of the wrong concrete type was passed to a manager.
	ErrUnsupportedKeyType = errors.New("unsupported key type")

	// ErrAlreadyRegistered means a key manager for the same type URL is
	// already present in a registry.
	ErrAlreadyRegistered = errors.New("key manager already registered")
)
