//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package settings provides a flat key-value settings store with typed
// accessors, persisted through a pluggable Codec.
//
// Keys are flat strings: dotted keys like "http.user-agent" are literal
// strings, not nested paths. Values are kept as strings and parsed on read.
package settings

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
)

var (
	// ErrKeyNotFound is returned when a key does not exist.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidValue is returned when a stored value cannot be parsed as
	// the requested type.
	ErrInvalidValue = errors.New("invalid value")
)

// Store provides typed access to persisted settings.
type Store interface {
	// Load replaces the current settings with the ones decoded from r.
	Load(r io.Reader) error
	// Save writes the current settings to w.
	Save(w io.Writer) error

	// String returns the value for key. A missing key fails with
	// ErrKeyNotFound; the typed getters below fail with ErrInvalidValue
	// when the value does not parse.
	String(key string) (string, error)
	// StringOr returns the value for key, or def if it is missing.
	StringOr(key string, def string) string
	// Int returns the value for key as an int.
	Int(key string) (int, error)
	// IntOr returns the value for key as an int, or def on any error.
	IntOr(key string, def int) int
	// Int64 returns the value for key as an int64.
	Int64(key string) (int64, error)
	// Int64Or returns the value for key as an int64, or def on any error.
	Int64Or(key string, def int64) int64
	// Bool returns the value for key as a bool.
	Bool(key string) (bool, error)
	// BoolOr returns the value for key as a bool, or def on any error.
	BoolOr(key string, def bool) bool
	// Float32 returns the value for key as a float32.
	Float32(key string) (float32, error)
	// Float32Or returns the value for key as a float32, or def on any error.
	Float32Or(key string, def float32) float32
	// Float64 returns the value for key as a float64.
	Float64(key string) (float64, error)
	// Float64Or returns the value for key as a float64, or def on any error.
	Float64Or(key string, def float64) float64

	// Set inserts or overwrites the value for key.
	Set(key, value string)
	// IsEmpty returns true if the store has no entries.
	IsEmpty() bool
	// All returns a copy of all key-value pairs.
	All() map[string]string
}

// Settings is the default Store implementation. It is not safe for
// concurrent use.
type Settings struct {
	codec Codec
	data  map[string]string
}

// New returns an empty Settings persisted in the properties format.
func New() *Settings {
	return NewWithCodec(Properties)
}

// NewWithCodec returns an empty Settings persisted with codec.
func NewWithCodec(codec Codec) *Settings {
	return &Settings{
		codec: codec,
		data:  make(map[string]string),
	}
}

// Codec returns the codec used by Load and Save.
func (s *Settings) Codec() Codec {
	return s.codec
}

// Load replaces the current settings with the ones decoded from r. On error
// the current settings are left unchanged.
func (s *Settings) Load(r io.Reader) error {
	data, err := s.codec.Decode(r)
	if err != nil {
		return fmt.Errorf("loading %s settings: %w", s.codec.Name(), err)
	}
	if data == nil {
		data = make(map[string]string)
	}
	s.data = data
	return nil
}

// Save writes the current settings to w.
func (s *Settings) Save(w io.Writer) error {
	if err := s.codec.Encode(w, s.data); err != nil {
		return fmt.Errorf("saving %s settings: %w", s.codec.Name(), err)
	}
	return nil
}

// String returns the value stored for key.
func (s *Settings) String(key string) (string, error) {
	return lookup(s, key, func(v string) (string, error) { return v, nil })
}

// StringOr returns the value stored for key, or def if it is missing.
func (s *Settings) StringOr(key string, def string) string {
	if v, err := s.String(key); err == nil {
		return v
	}
	return def
}

// Int returns the value for key parsed as an int.
func (s *Settings) Int(key string) (int, error) {
	return lookup(s, key, strconv.Atoi)
}

// IntOr is like Int but returns def on any error.
func (s *Settings) IntOr(key string, def int) int {
	if v, err := s.Int(key); err == nil {
		return v
	}
	return def
}

// Int64 returns the value for key parsed as an int64.
func (s *Settings) Int64(key string) (int64, error) {
	return lookup(s, key, func(v string) (int64, error) { return strconv.ParseInt(v, 10, 64) })
}

// Int64Or is like Int64 but returns def on any error.
func (s *Settings) Int64Or(key string, def int64) int64 {
	if v, err := s.Int64(key); err == nil {
		return v
	}
	return def
}

// Bool returns the value for key parsed with strconv.ParseBool.
func (s *Settings) Bool(key string) (bool, error) {
	return lookup(s, key, strconv.ParseBool)
}

// BoolOr is like Bool but returns def on any error.
func (s *Settings) BoolOr(key string, def bool) bool {
	if v, err := s.Bool(key); err == nil {
		return v
	}
	return def
}

// Float32 returns the value for key parsed as a float32.
func (s *Settings) Float32(key string) (float32, error) {
	return lookup(s, key, func(v string) (float32, error) {
		f, err := strconv.ParseFloat(v, 32)
		return float32(f), err
	})
}

// Float32Or is like Float32 but returns def on any error.
func (s *Settings) Float32Or(key string, def float32) float32 {
	if v, err := s.Float32(key); err == nil {
		return v
	}
	return def
}

// Float64 returns the value for key parsed as a float64.
func (s *Settings) Float64(key string) (float64, error) {
	return lookup(s, key, func(v string) (float64, error) { return strconv.ParseFloat(v, 64) })
}

// Float64Or is like Float64 but returns def on any error.
func (s *Settings) Float64Or(key string, def float64) float64 {
	if v, err := s.Float64(key); err == nil {
		return v
	}
	return def
}

// Set inserts or overwrites the value for key.
func (s *Settings) Set(key, value string) {
	s.data[key] = value
}

// IsEmpty returns true if there are no settings.
func (s *Settings) IsEmpty() bool {
	return len(s.data) == 0
}

// Len returns the number of settings.
func (s *Settings) Len() int {
	return len(s.data)
}

// Keys returns all keys in alphabetical order.
func (s *Settings) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns a copy of all key-value pairs.
func (s *Settings) All() map[string]string {
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

func lookup[T any](s *Settings, key string, parse func(string) (T, error)) (T, error) {
	var zero T
	raw, ok := s.data[key]
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	v, err := parse(raw)
	if err != nil {
		return zero, fmt.Errorf("%w for %s: %q", ErrInvalidValue, key, raw)
	}
	return v, nil
}

// Compile-time check that Settings implements Store.
var _ Store = (*Settings)(nil)
