//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package settings

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Codec converts settings to and from a byte stream.
type Codec interface {
	Name() string
	Decode(r io.Reader) (map[string]string, error)
	Encode(w io.Writer, data map[string]string) error
}

// Available codecs.
var (
	Properties Codec = propertiesCodec{}
	YAML       Codec = yamlCodec{}
	TOML       Codec = tomlCodec{}
)

// CodecForPath picks a codec from the file extension: ".yaml" and ".yml"
// use YAML, ".toml" uses TOML, anything else uses Properties.
func CodecForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".toml":
		return TOML
	default:
		return Properties
	}
}

// checkUTF8 rejects keys and values that text formats cannot store as-is.
func checkUTF8(data map[string]string) error {
	for k, v := range data {
		if !utf8.ValidString(k) {
			return fmt.Errorf("%w: key %q is not valid UTF-8", ErrInvalidValue, k)
		}
		if !utf8.ValidString(v) {
			return fmt.Errorf("%w: value of %q is not valid UTF-8", ErrInvalidValue, k)
		}
	}
	return nil
}
