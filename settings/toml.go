//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package settings

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// tomlCodec stores settings as top-level TOML keys. Keys that are not bare
// TOML keys (for example dotted keys) are written quoted. Tables are
// flattened to dotted keys on read.
type tomlCodec struct{}

func (tomlCodec) Name() string { return "toml" }

func (tomlCodec) Decode(r io.Reader) (map[string]string, error) {
	var raw map[string]interface{}
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if err := flattenTOML(k, v, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// flattenTOML stores v under key, joining nested table keys with a dot.
func flattenTOML(key string, v interface{}, out map[string]string) error {
	switch v := v.(type) {
	case map[string]interface{}:
		for k, child := range v {
			if err := flattenTOML(key+"."+k, child, out); err != nil {
				return err
			}
		}
	case string:
		out[key] = v
	case int64:
		out[key] = strconv.FormatInt(v, 10)
	case float64:
		out[key] = strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		out[key] = strconv.FormatBool(v)
	case time.Time:
		out[key] = v.Format(time.RFC3339Nano)
	case fmt.Stringer:
		// local dates and times
		out[key] = v.String()
	default:
		return fmt.Errorf("unsupported value for %q: %T", key, v)
	}
	return nil
}

func (tomlCodec) Encode(w io.Writer, data map[string]string) error {
	if err := checkUTF8(data); err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(data)
}
