// SPDX-License-Identifier: MIT

package category

import (
	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Decode parses a serialized category table in the given format.
func Decode(data []byte, format Format) (Table, error) {
	switch format {
	case JSON:
		return DecodeJSON(data)
	case YAML:
		return DecodeYAML(data)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "format %q", string(format))
	}
}

// DecodeJSON parses a JSON category table. Each entry is either a role map
// or a flat identifier list, which is filed under the atom's own name.
func DecodeJSON(data []byte) (Table, error) {
	raw := map[string]jsoniter.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode json table"), ErrMalformedTable)
	}
	t := make(Table, len(raw))
	for name, msg := range raw {
		var flat []string
		if err := json.Unmarshal(msg, &flat); err == nil {
			t[name] = Of(name, flat...)
			continue
		}
		var roles map[string][]string
		if err := json.Unmarshal(msg, &roles); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "entry %q", name), ErrMalformedTable)
		}
		t[name] = New(roles)
	}
	return t, nil
}

// DecodeYAML parses a YAML category table with the same shapes as DecodeJSON.
func DecodeYAML(data []byte) (Table, error) {
	raw := map[string]yaml.Node{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode yaml table"), ErrMalformedTable)
	}
	t := make(Table, len(raw))
	for name, node := range raw {
		switch node.Kind {
		case yaml.SequenceNode:
			var flat []string
			if err := node.Decode(&flat); err != nil {
				return nil, errors.Mark(errors.Wrapf(err, "entry %q", name), ErrMalformedTable)
			}
			t[name] = Of(name, flat...)
		case yaml.MappingNode:
			var roles map[string][]string
			if err := node.Decode(&roles); err != nil {
				return nil, errors.Mark(errors.Wrapf(err, "entry %q", name), ErrMalformedTable)
			}
			t[name] = New(roles)
		default:
			return nil, errors.Wrapf(ErrMalformedTable, "entry %q: expected a list or a role map", name)
		}
	}
	return t, nil
}
