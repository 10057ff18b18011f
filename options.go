// Copyright (c) 2025 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package keymanager

import (
	hclog "github.com/hashicorp/go-hclog"
)

// GetOpts iterates the inbound Options and returns a struct
func GetOpts(opt ...Option) (*Options, error) {
	opts := getDefaultOptions()
	for _, o := range opt {
		if o == nil {
			continue
		}
		iface := o()
		switch to := iface.(type) {
		case OptionFunc:
			if err := to(opts); err != nil {
				return nil, err
			}
		}
	}
	return opts, nil
}

// Option - a type that allows passing options to constructors. Concrete
// packages define their own local option funcs and separate them from these
// global ones by type-switching on the return value.
type Option func() interface{}

// OptionFunc - a type for funcs that operate on the shared Options struct
type OptionFunc func(*Options) error

// Options = how global options are represented
type Options struct {
	// WithConfigMap carries string configuration entries; which keys are
	// understood is package-specific.
	WithConfigMap map[string]string

	// WithLogger is used by components that emit diagnostics, such as the
	// registry. Validators never log.
	WithLogger hclog.Logger
}

func getDefaultOptions() *Options {
	return &Options{}
}

// WithConfigMap is an option accepting a map of configuration entries
func WithConfigMap(with map[string]string) Option {
	return func() interface{} {
		return OptionFunc(func(o *Options) error {
			o.WithConfigMap = with
			return nil
		})
	}
}

// WithLogger provides an optional hclog.Logger
func WithLogger(with hclog.Logger) Option {
	return func() interface{} {
		return OptionFunc(func(o *Options) error {
			o.WithLogger = with
			return nil
		})
	}
}
