// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vpdchart

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/vpdchart/raster"
	"github.com/gogpu/vpdchart/zone"
)

//go:embed profiles.yaml
var bundledProfiles []byte

// DefaultProfile is the crop used when a name does not match any profile.
const DefaultProfile = "general"

// Growth stages drawn when a request names no stage.
var growthStages = []string{"seedling", "veg", "flower"}

// Deficit limits accepted in profile files, kPa.
const (
	minDeficitLimit = 0
	maxDeficitLimit = 3
)

// DeficitRange is the acceptable deficit band of one stage.
type DeficitRange struct {
	Min   float64 `yaml:"min" json:"min"`
	Max   float64 `yaml:"max" json:"max"`
	Color string  `yaml:"color" json:"color"`
	Label string  `yaml:"label" json:"label"`
}

// Contains reports whether d lies in the band, limits included.
func (r DeficitRange) Contains(d float64) bool { return d >= r.Min && d <= r.Max }

func (r DeficitRange) band() zone.Range { return zone.Range{Min: r.Min, Max: r.Max} }

func (r DeficitRange) validate() error {
	if !(r.Min >= minDeficitLimit && r.Min < r.Max && r.Max <= maxDeficitLimit) {
		return fmt.Errorf("range %.2f-%.2f outside 0 <= min < max <= 3", r.Min, r.Max)
	}
	if _, err := raster.ParseHex(r.Color); err != nil {
		return err
	}
	return nil
}

// CropProfile is the set of stage bands for one crop. Profiles are not
// modified after loading.
type CropProfile struct {
	Key    string                  `json:"key"`
	Name   string                  `json:"name"`
	Stages map[string]DeficitRange `json:"stages"`
}

// Stage returns the band for key.
func (p *CropProfile) Stage(key string) (DeficitRange, bool) {
	r, ok := p.Stages[key]
	return r, ok
}

// StageKeys returns the stage keys in sorted order.
func (p *CropProfile) StageKeys() []string {
	keys := make([]string, 0, len(p.Stages))
	for k := range p.Stages {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (p *CropProfile) bands() map[string]zone.Range {
	m := make(map[string]zone.Range, len(p.Stages))
	for k, r := range p.Stages {
		m[k] = r.band()
	}
	return m
}

// ProfileSet is a read-only collection of crop profiles.
type ProfileSet struct {
	crops map[string]*CropProfile
}

type profileFile struct {
	Crops map[string]struct {
		Name   string                  `yaml:"name"`
		Stages map[string]DeficitRange `yaml:"stages"`
	} `yaml:"crops"`
}

// DefaultProfiles returns the bundled crop profiles. The set is parsed once
// and shared.
var DefaultProfiles = sync.OnceValue(func() *ProfileSet {
	ps, err := LoadProfiles(bytes.NewReader(bundledProfiles))
	if err != nil {
		panic("vpdchart: bundled profiles: " + err.Error())
	}
	return ps
})

// LoadProfiles reads a YAML profile file. The file must define the general
// profile, and every band must satisfy 0 <= min < max <= 3 with a hex color.
func LoadProfiles(r io.Reader) (*ProfileSet, error) {
	var f profileFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	ps := &ProfileSet{
		crops: make(map[string]*CropProfile, len(f.Crops)),
	}
	for key, c := range f.Crops {
		norm := normalizeCrop(key)
		if _, dup := ps.crops[norm]; dup {
			return nil, fmt.Errorf("%w: duplicate crop %q", ErrInvalidProfile, key)
		}
		if len(c.Stages) == 0 {
			return nil, fmt.Errorf("%w: crop %q has no stages", ErrInvalidProfile, key)
		}
		for stage, rng := range c.Stages {
			if err := rng.validate(); err != nil {
				return nil, fmt.Errorf("%w: %s/%s: %w", ErrInvalidProfile, key, stage, err)
			}
		}
		name := c.Name
		if name == "" {
			name = key
		}
		ps.crops[norm] = &CropProfile{Key: norm, Name: name, Stages: c.Stages}
	}
	if _, ok := ps.crops[DefaultProfile]; !ok {
		return nil, fmt.Errorf("%w: missing %q profile", ErrInvalidProfile, DefaultProfile)
	}
	return ps, nil
}

// normalizeCrop case-folds name and strips all white space. A Caser is
// stateful, so each call gets its own.
func normalizeCrop(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
	return cases.Fold().String(name)
}

// Lookup returns the profile matching name. Matching ignores case and white
// space; unmatched names yield the general profile.
func (ps *ProfileSet) Lookup(name string) *CropProfile {
	if p, ok := ps.crops[normalizeCrop(name)]; ok {
		return p
	}
	return ps.crops[DefaultProfile]
}

// Get returns the profile matching name without falling back.
func (ps *ProfileSet) Get(name string) (*CropProfile, bool) {
	p, ok := ps.crops[normalizeCrop(name)]
	return p, ok
}

// Crops returns every profile sorted by key.
func (ps *ProfileSet) Crops() []*CropProfile {
	out := make([]*CropProfile, 0, len(ps.crops))
	for _, p := range ps.crops {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *CropProfile) int { return strings.Compare(a.Key, b.Key) })
	return out
}
