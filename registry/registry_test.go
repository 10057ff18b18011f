// Copyright (c) 2025 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"testing"

	hclog "github.com/hashicorp/go-hclog"
	keymanager "github.com/openbao/go-kms-keymanager"
	"github.com/openbao/go-kms-keymanager/rsassapkcs1"
	"github.com/stretchr/testify/require"
)

// stubManager lets tests register arbitrary type URLs.
type stubManager struct {
	keyType string
}

var _ keymanager.KeyManager = (*stubManager)(nil)

func (s *stubManager) KeyType() string                 { return s.keyType }
func (s *stubManager) DoesSupport(typeURL string) bool { return typeURL == s.keyType }
func (s *stubManager) Primitive(context.Context, any) (any, error) {
	return nil, keymanager.ErrUnsupportedKeyType
}
func (s *stubManager) NewKey(context.Context, any) (any, error) {
	return nil, keymanager.ErrUnsupportedOperation
}
func (s *stubManager) NewKeyData(context.Context, any) (*keymanager.KeyData, error) {
	return nil, keymanager.ErrUnsupportedOperation
}

func TestRegister(t *testing.T) {
	reg, err := New(keymanager.WithLogger(hclog.NewNullLogger()))
	require.NoError(t, err)

	km, err := rsassapkcs1.NewVerifyKeyManager()
	require.NoError(t, err)

	require.NoError(t, reg.Register(km))

	t.Run("Duplicate", func(t *testing.T) {
		other, err := rsassapkcs1.NewVerifyKeyManager()
		require.NoError(t, err)
		require.ErrorIs(t, reg.Register(other), keymanager.ErrAlreadyRegistered)
	})

	t.Run("NilManager", func(t *testing.T) {
		require.ErrorIs(t, reg.Register(nil), keymanager.ErrInvalidParameter)
	})

	t.Run("EmptyKeyType", func(t *testing.T) {
		require.ErrorIs(t, reg.Register(&stubManager{}), keymanager.ErrInvalidParameter)
	})

	t.Run("Lookup", func(t *testing.T) {
		got, err := reg.KeyManager(rsassapkcs1.KeyType)
		require.NoError(t, err)
		require.Same(t, km, got)

		_, err = reg.KeyManager("type.openbao.org/NoSuchKey")
		require.ErrorIs(t, err, keymanager.ErrUnsupportedKeyType)
	})
}

func TestPrimitive(t *testing.T) {
	ctx := context.Background()

	reg, err := New()
	require.NoError(t, err)

	km, err := rsassapkcs1.NewVerifyKeyManager()
	require.NoError(t, err)
	require.NoError(t, reg.Register(km))

	t.Run("UnknownTypeURL", func(t *testing.T) {
		prim, err := reg.Primitive(ctx, "type.openbao.org/NoSuchKey", nil)
		require.ErrorIs(t, err, keymanager.ErrUnsupportedKeyType)
		require.Nil(t, prim)
	})

	t.Run("DispatchesToManager", func(t *testing.T) {
		// An invalid key proves the call reached the manager's gate.
		key := &rsassapkcs1.PublicKey{Version: 99}
		prim, err := reg.Primitive(ctx, rsassapkcs1.KeyType, key)
		require.ErrorIs(t, err, keymanager.ErrUnsupportedVersion)
		require.Nil(t, prim)
	})
}
