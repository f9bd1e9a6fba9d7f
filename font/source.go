// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package font

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Source identifies where font bytes come from: "bundled:<name>" or an
// http(s) URL.
type Source string

// BundledPrefix marks sources compiled into the binary.
const BundledPrefix = "bundled:"

// Bundled sources.
const (
	GoRegular Source = BundledPrefix + "go-regular"
	GoBold    Source = BundledPrefix + "go-bold"
	GoMono    Source = BundledPrefix + "go-mono"

	// DefaultSource is the font used for all chart text unless overridden.
	DefaultSource = GoRegular
)

var bundledFonts = map[Source][]byte{
	GoRegular: goregular.TTF,
	GoBold:    gobold.TTF,
	GoMono:    gomono.TTF,
}

// BundledSources returns the bundled sources in a stable order.
func BundledSources() []Source {
	return []Source{GoRegular, GoBold, GoMono}
}

// IsBundled reports whether s names a bundled font.
func (s Source) IsBundled() bool {
	return strings.HasPrefix(string(s), BundledPrefix)
}

// IsRemote reports whether s is an http or https URL.
func (s Source) IsRemote() bool {
	u, err := url.Parse(string(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Validate returns ErrInvalidSource for unknown bundled names and for
// anything that is not an http(s) URL.
func (s Source) Validate() error {
	switch {
	case s.IsBundled():
		if _, ok := bundledFonts[s]; !ok {
			return fmt.Errorf("%w: unknown bundled font %q", ErrInvalidSource, s)
		}
		return nil
	case s.IsRemote():
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSource, s)
	}
}

func (s Source) String() string { return string(s) }

// DefaultFamily is the Key family used when no override is given. It is
// not accepted as an override.
const DefaultFamily = "default"

// Key identifies a cache entry.
type Key struct {
	Source Source
	Family string
}

// NewKey returns the key for src and an optional family override.
func NewKey(src Source, family string) Key {
	if family == "" {
		family = DefaultFamily
	}
	return Key{Source: src, Family: family}
}

func (k Key) String() string {
	return string(k.Source) + "|" + k.Family
}
