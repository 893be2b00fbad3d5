package schema

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/wippyai/oer/errors"
	"gopkg.in/yaml.v3"
)

// yamlType is the on-disk form of a descriptor. A bare scalar such as
// "u32" is shorthand for {kind: u32}.
type yamlType struct {
	Elem     *yamlType   `yaml:"elem,omitempty"`
	Kind     string      `yaml:"kind"`
	Name     string      `yaml:"name,omitempty"`
	Members  []yamlField `yaml:"members,omitempty"`
	Variants []yamlField `yaml:"variants,omitempty"`
	Size     int         `yaml:"size,omitempty"`
	Max      int         `yaml:"max,omitempty"`
}

type yamlField struct {
	Type *yamlType `yaml:"type,omitempty"`
	Name string    `yaml:"name"`
}

func (y *yamlType) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		y.Kind = n.Value
		return nil
	}
	if err := checkKeys(n, "kind", "name", "members", "variants", "size", "max", "elem"); err != nil {
		return err
	}
	type plain yamlType
	return n.Decode((*plain)(y))
}

func (f *yamlField) UnmarshalYAML(n *yaml.Node) error {
	if err := checkKeys(n, "name", "type"); err != nil {
		return err
	}
	type plain yamlField
	return n.Decode((*plain)(f))
}

// checkKeys rejects unknown mapping keys. Node.Decode does not inherit
// the decoder's KnownFields setting, so custom unmarshalers check here.
func checkKeys(n *yaml.Node, allowed ...string) error {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if !slices.Contains(allowed, key) {
			return fmt.Errorf("line %d: unknown key %q", n.Content[i].Line, key)
		}
	}
	return nil
}

// ParseYAML reads a descriptor tree from YAML:
//
//	kind: sequence
//	name: Message
//	members:
//	  - {name: id, type: u32}
//	  - name: body
//	    type:
//	      kind: choice
//	      variants:
//	        - {name: ping}
//	        - {name: data, type: {kind: octets, size: 16}}
//	  - {name: tags, type: {kind: sequence-of, max: 4, elem: u8}}
//
// Unknown keys are rejected. The result is validated.
func ParseYAML(data []byte) (*Type, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var doc yamlType
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.InvalidInput(errors.PhaseValidate, "empty schema document")
		}
		return nil, errors.Wrap(errors.PhaseValidate, errors.KindInvalidData, err, "parse schema YAML")
	}

	t, err := doc.build(nil)
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (y *yamlType) build(path []string) (*Type, error) {
	kind, ok := ParseKind(y.Kind)
	if !ok {
		return nil, errors.New(errors.PhaseValidate, errors.KindUnsupported).
			Path(path...).
			Detail("unknown kind %q", y.Kind).
			Build()
	}

	t := &Type{Kind: kind, Name: y.Name, Size: y.Size, Max: y.Max}
	var err error
	switch kind {
	case KindSequence:
		t.Fields, err = buildFields(y.Members, path, false)
	case KindChoice:
		t.Fields, err = buildFields(y.Variants, path, true)
	case KindSequenceOf:
		if y.Elem == nil {
			return nil, errors.New(errors.PhaseValidate, errors.KindInvalidData).
				Path(path...).
				Detail("sequence-of without elem").
				Build()
		}
		t.Elem, err = y.Elem.build(append(append([]string{}, path...), "[elem]"))
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func buildFields(fields []yamlField, path []string, emptyOK bool) ([]Field, error) {
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i].Name = f.Name
		if f.Type == nil {
			if emptyOK {
				continue
			}
			return nil, errors.New(errors.PhaseValidate, errors.KindInvalidData).
				Path(path...).
				Detail("member %q without type", f.Name).
				Build()
		}
		t, err := f.Type.build(append(append([]string{}, path...), f.Name))
		if err != nil {
			return nil, err
		}
		out[i].Type = t
	}
	return out, nil
}
