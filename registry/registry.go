// Copyright (c) 2025 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

// Package registry maps key type URLs to the key managers that understand
// them. The registry only dispatches; validation and primitive construction
// stay inside the individual managers.
package registry

import (
	"context"
	"fmt"
	"sync"

	hclog "github.com/hashicorp/go-hclog"
	keymanager "github.com/openbao/go-kms-keymanager"
)

// Registry dispatches key type URLs to registered KeyManagers. Construct
// with New; the zero value is not usable.
type Registry struct {
	logger hclog.Logger

	mu       sync.RWMutex
	managers map[string]keymanager.KeyManager
}

// New returns an empty Registry.
//
// Supported options:
//
//   - keymanager.WithLogger: emit a debug line per registration
func New(opt ...keymanager.Option) (*Registry, error) {
	opts, err := keymanager.GetOpts(opt...)
	if err != nil {
		return nil, err
	}
	logger := opts.WithLogger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Registry{
		logger:   logger,
		managers: make(map[string]keymanager.KeyManager),
	}, nil
}

// Register adds km, keyed by its type URL. Registering a second manager for
// the same type URL fails; replacing a manager at runtime is not supported.
func (r *Registry) Register(km keymanager.KeyManager) error {
	if km == nil {
		return fmt.Errorf("missing key manager: %w", keymanager.ErrInvalidParameter)
	}
	typeURL := km.KeyType()
	if typeURL == "" {
		return fmt.Errorf("key manager has an empty key type: %w", keymanager.ErrInvalidParameter)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.managers[typeURL]; ok {
		return fmt.Errorf("%q: %w", typeURL, keymanager.ErrAlreadyRegistered)
	}
	r.managers[typeURL] = km

	r.logger.Debug("registered key manager", "key_type", typeURL)
	return nil
}

// KeyManager returns the manager registered for typeURL.
func (r *Registry) KeyManager(typeURL string) (keymanager.KeyManager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	km, ok := r.managers[typeURL]
	if !ok {
		return nil, fmt.Errorf("no key manager registered for %q: %w", typeURL, keymanager.ErrUnsupportedKeyType)
	}
	return km, nil
}

// Primitive looks up the manager for typeURL and constructs a primitive
// from key with it.
func (r *Registry) Primitive(ctx context.Context, typeURL string, key any) (any, error) {
	km, err := r.KeyManager(typeURL)
	if err != nil {
		return nil, err
	}
	return km.Primitive(ctx, key)
}
