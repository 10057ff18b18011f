// Copyright (c) 2025 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

// Package subtle implements raw signature-verification primitives. Inputs
// are assumed to be policy-checked by a key manager before they get here;
// this package only enforces what the underlying cryptography itself cannot
// work without.
package subtle

import (
	"context"
	"crypto"
	"crypto/rsa"
	"errors"
	"fmt"
	"math/big"

	// Register the hash constructions CryptoHash values resolve to.
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"

	keymanager "github.com/openbao/go-kms-keymanager"
)

var (
	// ErrInvalidPublicKey is returned when key material is structurally
	// unusable for verification.
	ErrInvalidPublicKey = errors.New("invalid RSA public key")

	// ErrVerificationFailed is returned when a signature does not verify.
	ErrVerificationFailed = errors.New("signature verification failed")
)

const (
	// minPublicExponent is F4. Smaller or even exponents are degenerate and
	// refused, matching BoringSSL-lineage verifiers.
	minPublicExponent = 65537

	// maxPublicExponentBits bounds the exponent so it fits a platform int.
	maxPublicExponentBits = 31
)

// RsaSsaPkcs1Verifier verifies RSASSA-PKCS1-v1_5 signatures over full
// messages. It is immutable after construction and safe for concurrent use.
type RsaSsaPkcs1Verifier struct {
	pub  *rsa.PublicKey
	hash crypto.Hash
}

// Ensure that we are implementing SignatureVerifier
var _ keymanager.SignatureVerifier = (*RsaSsaPkcs1Verifier)(nil)

// NewRsaSsaPkcs1Verifier returns a verifier for the given public key and
// message hash. The exponent must be odd, at least 65537 and at most 31
// bits; the hash must be linked into the binary.
func NewRsaSsaPkcs1Verifier(pub *rsa.PublicKey, hash crypto.Hash) (*RsaSsaPkcs1Verifier, error) {
	if pub == nil || pub.N == nil || pub.N.Sign() == 0 {
		return nil, fmt.Errorf("%w: missing modulus", ErrInvalidPublicKey)
	}
	if err := validateExponent(pub.E); err != nil {
		return nil, err
	}
	if !hash.Available() {
		return nil, fmt.Errorf("%w: hash %v is not available", ErrInvalidPublicKey, hash)
	}
	return &RsaSsaPkcs1Verifier{pub: pub, hash: hash}, nil
}

// NewRsaSsaPkcs1VerifierFromBytes is like NewRsaSsaPkcs1Verifier but takes
// the modulus and public exponent as big-endian unsigned bytes.
func NewRsaSsaPkcs1VerifierFromBytes(modulus, exponent []byte, hash crypto.Hash) (*RsaSsaPkcs1Verifier, error) {
	if len(modulus) == 0 {
		return nil, fmt.Errorf("%w: empty modulus", ErrInvalidPublicKey)
	}
	e, err := parseExponent(exponent)
	if err != nil {
		return nil, err
	}
	return NewRsaSsaPkcs1Verifier(&rsa.PublicKey{
		N: new(big.Int).SetBytes(modulus),
		E: e,
	}, hash)
}

func parseExponent(raw []byte) (int, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("%w: empty exponent", ErrInvalidPublicKey)
	}
	e := new(big.Int).SetBytes(raw)
	if e.BitLen() > maxPublicExponentBits {
		return 0, fmt.Errorf("%w: exponent longer than %d bits", ErrInvalidPublicKey, maxPublicExponentBits)
	}
	return int(e.Int64()), nil
}

func validateExponent(e int) error {
	if e < minPublicExponent {
		return fmt.Errorf("%w: public exponent %d is smaller than %d", ErrInvalidPublicKey, e, minPublicExponent)
	}
	if big.NewInt(int64(e)).BitLen() > maxPublicExponentBits {
		return fmt.Errorf("%w: exponent longer than %d bits", ErrInvalidPublicKey, maxPublicExponentBits)
	}
	if e%2 == 0 {
		return fmt.Errorf("%w: public exponent must be odd", ErrInvalidPublicKey)
	}
	return nil
}

// Verify hashes message and checks signature against the digest.
func (v *RsaSsaPkcs1Verifier) Verify(ctx context.Context, message []byte, signature []byte) error {
	// Check for context cancellation before doing work
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	hasher := v.hash.New()
	hasher.Write(message)
	if err := rsa.VerifyPKCS1v15(v.pub, v.hash, hasher.Sum(nil), signature); err != nil {
		return fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	return nil
}
