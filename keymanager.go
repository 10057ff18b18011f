// Copyright (c) 2025 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

// Package keymanager defines the contracts shared by typed key managers.
//
// A KeyManager understands keys of exactly one key type, identified by a
// type URL. It validates key descriptors handed to it by the surrounding
// system and turns valid ones into primitives (opaque capability objects
// implementing a single cryptographic operation). Managers for public keys
// are verification-only and refuse every key-creation operation.
package keymanager

import (
	"context"
)

// KeyMaterialType classifies the material carried by a KeyData blob.
type KeyMaterialType int

const (
	KeyMaterialType_Unknown KeyMaterialType = iota
	KeyMaterialType_Symmetric
	KeyMaterialType_AsymmetricPrivate
	KeyMaterialType_AsymmetricPublic
)

// KeyData is the storable form of a key: the type URL of the manager that
// understands it, the class of material it holds, and the opaque material
// itself. Only key managers that generate keys ever produce one.
type KeyData struct {
	// TypeUrl identifies the key manager responsible for Value.
	TypeUrl string

	// Material is the class of key material in Value.
	Material KeyMaterialType

	// Value is the key material in whatever encoding the owning manager
	// uses. It is opaque to everything but that manager.
	Value []byte
}

// KeyManager understands keys of a single key type: it can validate key
// descriptors of that type and construct primitives from valid ones.
// Managers that support generation can also mint new keys; verification-side
// managers fail those calls with ErrUnsupportedOperation.
//
// Implementations hold no mutable state after construction and are safe for
// concurrent use.
type KeyManager interface {
	// KeyType returns the type URL of keys handled by this manager.
	KeyType() string

	// DoesSupport reports whether this manager handles keys of the given
	// type URL.
	DoesSupport(typeURL string) bool

	// Primitive validates the given key descriptor and, only on success,
	// constructs a primitive from it. The concrete descriptor and primitive
	// types are manager-specific; a descriptor of the wrong type fails with
	// ErrUnsupportedKeyType. No failure ever returns a usable primitive.
	Primitive(ctx context.Context, key any) (any, error)

	// NewKey generates a new key descriptor according to the given key
	// format. Verification-side managers always fail with
	// ErrUnsupportedOperation.
	NewKey(ctx context.Context, format any) (any, error)

	// NewKeyData is like NewKey but returns the storable KeyData form.
	// Verification-side managers always fail with ErrUnsupportedOperation.
	NewKeyData(ctx context.Context, format any) (*KeyData, error)
}

// SignatureVerifier verifies digital signatures over full messages. It is
// the primitive produced by verification-side key managers.
//
// Instances are immutable after construction and safe for unsynchronized
// concurrent use.
type SignatureVerifier interface {
	// Verify returns nil iff signature is a valid signature over message
	// under the key this verifier was constructed from.
	Verify(ctx context.Context, message []byte, signature []byte) error
}
