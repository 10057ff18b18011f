// Copyright (c) 2025 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

// Package rsassapkcs1 provides the verification-side key manager for
// RSASSA-PKCS1-v1_5 public keys. The manager is the trust boundary between
// key descriptors received from storage or configuration and verifiers the
// application may call: no primitive is ever constructed from a descriptor
// that has not passed the full validation gate.
package rsassapkcs1

import (
	"context"
	"fmt"
	"math/big"

	keymanager "github.com/openbao/go-kms-keymanager"
	"github.com/openbao/go-kms-keymanager/subtle"
)

const (
	// KeyType identifies keys handled by VerifyKeyManager.
	KeyType = "type.openbao.org/RsaSsaPkcs1PublicKey"

	// Version is the single descriptor version this manager understands.
	// Descriptors carrying any other version are rejected outright.
	Version uint32 = 0

	// DefaultMinModulusBits is the default lower bound on the decoded
	// modulus bit length. Anything smaller is a security defect.
	DefaultMinModulusBits = 2048
)

// Params carries the signature scheme parameters of a public key.
type Params struct {
	// Hash is the message digest bound to the signature scheme.
	Hash keymanager.HashType
}

// PublicKey is an already-parsed RSA public key descriptor. How it was
// serialized is the loader's business; this package only sees the record.
type PublicKey struct {
	// Version of the descriptor format. Must equal Version.
	Version uint32

	// Modulus is the RSA modulus n as big-endian unsigned bytes.
	Modulus []byte

	// Exponent is the RSA public exponent e as big-endian unsigned bytes.
	// Its value is judged by the primitive, not by validation.
	Exponent []byte

	// Params is the signature scheme configuration.
	Params Params
}

// VerifyKeyManager validates RsaSsaPkcs1 public keys and constructs
// signature verifiers from them. It holds only fixed policy (version
// constant, modulus bounds, hash allow-list) decided at construction, so
// any number of calls may run concurrently.
//
// It never creates key material: NewKey and NewKeyData always fail. Key
// generation belongs to the signing-side manager.
type VerifyKeyManager struct {
	minModulusBits int
	maxModulusBits int
	allowedHashes  []keymanager.HashType
}

// Ensure that we are implementing KeyManager
var _ keymanager.KeyManager = (*VerifyKeyManager)(nil)

// NewVerifyKeyManager returns a manager with the given policy.
//
// Supported options:
//
//   - keymanager.WithConfigMap: accepts "min_modulus_bits",
//     "max_modulus_bits" and "allowed_hashes" (comma-separated hash names)
//   - WithMinModulusBits, WithMaxModulusBits, WithAllowedHashes: same
//     policy knobs for embedding; these win over the config map
func NewVerifyKeyManager(opt ...keymanager.Option) (*VerifyKeyManager, error) {
	opts, err := getOpts(opt...)
	if err != nil {
		return nil, err
	}
	if opts.withMaxModulusBits != 0 && opts.withMaxModulusBits < opts.withMinModulusBits {
		return nil, fmt.Errorf("max modulus bits %d is smaller than min %d: %w",
			opts.withMaxModulusBits, opts.withMinModulusBits, keymanager.ErrInvalidParameter)
	}
	if len(opts.withAllowedHashes) == 0 {
		return nil, fmt.Errorf("empty hash allow-list: %w", keymanager.ErrInvalidParameter)
	}
	for _, h := range opts.withAllowedHashes {
		if !h.CryptoHash().Available() {
			return nil, fmt.Errorf("allow-listed hash %v is not available: %w", h, keymanager.ErrInvalidParameter)
		}
	}

	m := &VerifyKeyManager{
		minModulusBits: opts.withMinModulusBits,
		maxModulusBits: opts.withMaxModulusBits,
		allowedHashes:  make([]keymanager.HashType, len(opts.withAllowedHashes)),
	}
	copy(m.allowedHashes, opts.withAllowedHashes)
	return m, nil
}

// KeyType returns the type URL of keys handled by this manager.
func (m *VerifyKeyManager) KeyType() string {
	return KeyType
}

// DoesSupport reports whether this manager handles the given type URL.
func (m *VerifyKeyManager) DoesSupport(typeURL string) bool {
	return typeURL == KeyType
}

// ValidateParams checks the hash choice against the allow-list. The list is
// explicit: HashType_Unknown and anything else not named fails.
func (m *VerifyKeyManager) ValidateParams(p Params) error {
	for _, h := range m.allowedHashes {
		if p.Hash == h {
			return nil
		}
	}
	return fmt.Errorf("hash %v: %w", p.Hash, keymanager.ErrUnsupportedHash)
}

// ValidateKey checks the descriptor in a fixed order, stopping at the first
// failure: version, modulus well-formedness, modulus bit length, params.
// Success means the key is acceptable for building a verifier.
func (m *VerifyKeyManager) ValidateKey(key *PublicKey) error {
	if key == nil {
		return fmt.Errorf("missing public key: %w", keymanager.ErrInvalidParameter)
	}
	if key.Version != Version {
		return fmt.Errorf("key version %d, only version %d is supported: %w",
			key.Version, Version, keymanager.ErrUnsupportedVersion)
	}
	n, err := parseModulus(key.Modulus)
	if err != nil {
		return err
	}
	// The bit length is taken from the decoded integer so leading zero
	// bytes cannot inflate the apparent key size.
	bits := n.BitLen()
	if bits < m.minModulusBits {
		return fmt.Errorf("modulus is %d bits, at least %d required: %w",
			bits, m.minModulusBits, keymanager.ErrInsecureModulusSize)
	}
	if m.maxModulusBits != 0 && bits > m.maxModulusBits {
		return fmt.Errorf("modulus is %d bits, at most %d accepted: %w",
			bits, m.maxModulusBits, keymanager.ErrInsecureModulusSize)
	}
	return m.ValidateParams(key.Params)
}

func parseModulus(raw []byte) (*big.Int, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("modulus is empty: %w", keymanager.ErrMalformedModulus)
	}
	n := new(big.Int).SetBytes(raw)
	if n.Sign() == 0 {
		return nil, fmt.Errorf("modulus is zero: %w", keymanager.ErrMalformedModulus)
	}
	return n, nil
}

// Primitive validates key and, only on success, constructs a
// keymanager.SignatureVerifier from it. Validation and construction are one
// step: callers cannot obtain a primitive from an unvalidated key, and no
// failure path returns a usable primitive.
func (m *VerifyKeyManager) Primitive(ctx context.Context, key any) (any, error) {
	pub, ok := key.(*PublicKey)
	if !ok {
		return nil, fmt.Errorf("want *rsassapkcs1.PublicKey, got %T: %w", key, keymanager.ErrUnsupportedKeyType)
	}
	return m.Verifier(ctx, pub)
}

// Verifier is the typed form of Primitive.
func (m *VerifyKeyManager) Verifier(_ context.Context, key *PublicKey) (keymanager.SignatureVerifier, error) {
	if err := m.ValidateKey(key); err != nil {
		return nil, err
	}
	v, err := subtle.NewRsaSsaPkcs1VerifierFromBytes(key.Modulus, key.Exponent, key.Params.Hash.CryptoHash())
	if err != nil {
		// The key was well-formed by our policy but the underlying
		// cryptography refused it (degenerate exponent and the like).
		return nil, fmt.Errorf("%w: %v", keymanager.ErrPrimitiveConstruction, err)
	}
	return v, nil
}

// NewKey always fails. This manager handles public (verification) keys and
// must never mint key material; use the signing-side RsaSsaPkcs1 key
// manager to generate keys.
func (m *VerifyKeyManager) NewKey(_ context.Context, _ any) (any, error) {
	return nil, fmt.Errorf("key generation is not supported for public keys, use the signing-side key manager: %w",
		keymanager.ErrUnsupportedOperation)
}

// NewKeyData always fails, for the same reason as NewKey.
func (m *VerifyKeyManager) NewKeyData(_ context.Context, _ any) (*keymanager.KeyData, error) {
	return nil, fmt.Errorf("key generation is not supported for public keys, use the signing-side key manager: %w",
		keymanager.ErrUnsupportedOperation)
}
