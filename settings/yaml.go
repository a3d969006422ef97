//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package settings

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlCodec stores settings as a flat YAML mapping. yaml.Marshal on
// map[string]string produces alphabetical key ordering, so the output is
// deterministic. Nested mappings are accepted on read and flattened to
// dotted keys.
type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Decode(r io.Reader) (map[string]string, error) {
	out := make(map[string]string)
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		return nil, err
	}
	if len(doc.Content) == 0 {
		return out, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.AliasNode {
		root = root.Alias
	}
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return out, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if err := flattenYAML(root.Content[i].Value, root.Content[i+1], out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// flattenYAML stores the value node n under key, joining nested mapping
// keys with a dot.
func flattenYAML(key string, n *yaml.Node, out map[string]string) error {
	switch n.Kind {
	case yaml.AliasNode:
		return flattenYAML(key, n.Alias, out)
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			if err := flattenYAML(key+"."+n.Content[i].Value, n.Content[i+1], out); err != nil {
				return err
			}
		}
		return nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			out[key] = ""
		} else {
			out[key] = n.Value
		}
		return nil
	default:
		return fmt.Errorf("line %d: unsupported value for %q", n.Line, key)
	}
}

func (yamlCodec) Encode(w io.Writer, data map[string]string) error {
	if len(data) == 0 {
		return nil
	}
	if err := checkUTF8(data); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}
