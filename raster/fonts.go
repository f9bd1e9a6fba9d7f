// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"bytes"
	"fmt"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"
)

// Font is a parsed TrueType/OpenType font usable by every backend.
//
// The parsed tables are read-only, so a Font is safe for concurrent use.
type Font struct {
	family   string
	fullName string
	data     []byte
	outlines *sfnt.Font
	shaping  *gotext.Font
}

// ParseFont parses TTF or OTF data. The slice is retained and must not be
// modified afterwards.
func ParseFont(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrInvalidFont)
	}
	outlines, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: shaping tables: %w", ErrInvalidFont, err)
	}

	f := &Font{data: data, outlines: outlines, shaping: face.Font}
	var buf sfnt.Buffer
	if name, err := outlines.Name(&buf, sfnt.NameIDFamily); err == nil {
		f.family = name
	}
	if name, err := outlines.Name(&buf, sfnt.NameIDFull); err == nil {
		f.fullName = name
	}
	return f, nil
}

// Family returns the family name from the font's name table, or "".
func (f *Font) Family() string { return f.family }

// FullName returns the full font name from the name table, or "".
func (f *Font) FullName() string { return f.fullName }

// Size returns the size of the font data in bytes.
func (f *Font) Size() int { return len(f.data) }

// fontTable is the family registry embedded by every backend.
type fontTable struct {
	mu    sync.RWMutex
	fonts map[string]*Font
}

func (t *fontTable) RegisterFont(family string, f *Font) {
	if f == nil || family == "" {
		return
	}
	t.mu.Lock()
	if t.fonts == nil {
		t.fonts = make(map[string]*Font)
	}
	_, replaced := t.fonts[family]
	t.fonts[family] = f
	t.mu.Unlock()
	slogger().Debug("raster: font registered", "family", family, "replaced", replaced)
}

func (t *fontTable) LookupFont(family string) (*Font, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	f, ok := t.fonts[family]
	return f, ok
}
