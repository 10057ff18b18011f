// Copyright (c) 2025 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package rsassapkcs1

import (
	"fmt"

	"github.com/hashicorp/go-secure-stdlib/parseutil"
	"github.com/hashicorp/go-secure-stdlib/strutil"
	"github.com/mitchellh/mapstructure"
	keymanager "github.com/openbao/go-kms-keymanager"
)

// policyConfig mirrors the WithConfigMap entries understood by this package.
type policyConfig struct {
	MinModulusBits string `mapstructure:"min_modulus_bits"`
	MaxModulusBits string `mapstructure:"max_modulus_bits"`
	AllowedHashes  string `mapstructure:"allowed_hashes"`
}

// getOpts iterates the inbound Options and returns a struct
func getOpts(opt ...keymanager.Option) (*options, error) {
	// First, separate out options into local and global
	opts := getDefaultOptions()
	var globalOptions []keymanager.Option
	var localOptions []OptionFunc
	for _, o := range opt {
		if o == nil {
			continue
		}
		iface := o()
		switch to := iface.(type) {
		case keymanager.OptionFunc:
			globalOptions = append(globalOptions, o)
		case OptionFunc:
			localOptions = append(localOptions, to)
		}
	}

	// Parse the global options
	var err error
	opts.Options, err = keymanager.GetOpts(globalOptions...)
	if err != nil {
		return nil, err
	}

	// Don't ever return blank options
	if opts.Options == nil {
		opts.Options = new(keymanager.Options)
	}

	// Policy can be provided either via the WithConfigMap field (for
	// embedding behind generic configuration) or via local option functions.
	// First pull from the map.
	if opts.Options.WithConfigMap != nil {
		var cfg policyConfig
		if err := mapstructure.Decode(opts.Options.WithConfigMap, &cfg); err != nil {
			return nil, fmt.Errorf("decode config map: %w", err)
		}
		if cfg.MinModulusBits != "" {
			bits, err := parseutil.ParseInt(cfg.MinModulusBits)
			if err != nil {
				return nil, fmt.Errorf("parse min_modulus_bits: %w", err)
			}
			opts.withMinModulusBits = int(bits)
		}
		if cfg.MaxModulusBits != "" {
			bits, err := parseutil.ParseInt(cfg.MaxModulusBits)
			if err != nil {
				return nil, fmt.Errorf("parse max_modulus_bits: %w", err)
			}
			opts.withMaxModulusBits = int(bits)
		}
		if cfg.AllowedHashes != "" {
			var hashes []keymanager.HashType
			for _, name := range strutil.ParseStringSlice(cfg.AllowedHashes, ",") {
				h, err := keymanager.HashTypeFromString(name)
				if err != nil {
					return nil, fmt.Errorf("parse allowed_hashes: %w", err)
				}
				hashes = append(hashes, h)
			}
			opts.withAllowedHashes = hashes
		}
	}

	// Now run the local options functions. This may overwrite options set by
	// the map above.
	for _, o := range localOptions {
		if o != nil {
			if err := o(&opts); err != nil {
				return nil, err
			}
		}
	}

	return &opts, nil
}

// OptionFunc holds a function with local options
type OptionFunc func(*options) error

// options = how options are represented
type options struct {
	*keymanager.Options

	withMinModulusBits int
	withMaxModulusBits int
	withAllowedHashes  []keymanager.HashType
}

func getDefaultOptions() options {
	return options{
		withMinModulusBits: DefaultMinModulusBits,
		withAllowedHashes: []keymanager.HashType{
			keymanager.HashType_SHA256,
			keymanager.HashType_SHA384,
			keymanager.HashType_SHA512,
		},
	}
}

// WithMinModulusBits sets the smallest accepted modulus bit length.
func WithMinModulusBits(bits int) keymanager.Option {
	return func() interface{} {
		return OptionFunc(func(o *options) error {
			if bits <= 0 {
				return fmt.Errorf("min modulus bits must be positive: %w", keymanager.ErrInvalidParameter)
			}
			o.withMinModulusBits = bits
			return nil
		})
	}
}

// WithMaxModulusBits sets the largest accepted modulus bit length. Zero
// means unbounded.
func WithMaxModulusBits(bits int) keymanager.Option {
	return func() interface{} {
		return OptionFunc(func(o *options) error {
			if bits < 0 {
				return fmt.Errorf("max modulus bits must not be negative: %w", keymanager.ErrInvalidParameter)
			}
			o.withMaxModulusBits = bits
			return nil
		})
	}
}

// WithAllowedHashes replaces the hash allow-list. The list is explicit:
// anything not named is rejected at validation time.
func WithAllowedHashes(hashes ...keymanager.HashType) keymanager.Option {
	return func() interface{} {
		return OptionFunc(func(o *options) error {
			o.withAllowedHashes = hashes
			return nil
		})
	}
}
