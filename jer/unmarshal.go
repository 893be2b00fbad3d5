package jer

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/tidwall/jsonc"
	"github.com/wippyai/oer/codec"
	"github.com/wippyai/oer/errors"
	"github.com/wippyai/oer/internal/coerce"
	"github.com/wippyai/oer/schema"
)

// Unmarshal parses JER JSON into the dynamic form of t: bool, the
// exact-width Go integer or float, []byte, map[string]any, codec.Selected
// and []any.
func Unmarshal(t *schema.Type, data []byte) (any, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "malformed JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.InvalidData(errors.PhaseDecode, nil, "trailing data after JSON value")
	}

	v, err := readValue(t, raw)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func unexpected(t *schema.Type, raw any) *errors.Error {
	return errors.TypeMismatch(errors.PhaseDecode, nil, jsonTypeName(raw), t.String())
}

func jsonTypeName(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", raw)
}

func readValue(t *schema.Type, raw any) (any, *errors.Error) {
	switch t.Kind {
	case schema.KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, unexpected(t, raw)
		}
		return b, nil

	case schema.KindU8, schema.KindU16, schema.KindU32, schema.KindU64:
		n, ok := raw.(json.Number)
		if !ok {
			return nil, unexpected(t, raw)
		}
		u, fits := coerce.Unsigned(n, t.Kind.Width()*8)
		if !fits {
			return nil, errors.Overflow(errors.PhaseDecode, nil, n.String(), t.Kind.String())
		}
		return unsignedAs(t.Kind, u), nil

	case schema.KindS8, schema.KindS16, schema.KindS32, schema.KindS64:
		n, ok := raw.(json.Number)
		if !ok {
			return nil, unexpected(t, raw)
		}
		i, fits := coerce.Signed(n, t.Kind.Width()*8)
		if !fits {
			return nil, errors.Overflow(errors.PhaseDecode, nil, n.String(), t.Kind.String())
		}
		return signedAs(t.Kind, i), nil

	case schema.KindF32, schema.KindF64:
		f, err := readReal(t, raw)
		if err != nil {
			return nil, err
		}
		if t.Kind == schema.KindF32 {
			return float32(f), nil
		}
		return f, nil

	case schema.KindOctets:
		s, ok := raw.(string)
		if !ok {
			return nil, unexpected(t, raw)
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				SchemaType(t.String()).
				Value(s).
				Cause(err).
				Detail("octet string is not hex").
				Build()
		}
		if len(b) != t.Size {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Detail("octet string has %d bytes, want %d", len(b), t.Size).
				Build()
		}
		return b, nil

	case schema.KindSequence:
		return readSequence(t, raw)

	case schema.KindChoice:
		return readChoice(t, raw)

	case schema.KindSequenceOf:
		return readSequenceOf(t, raw)
	}
	return nil, errors.Unsupported(errors.PhaseDecode, "schema kind: "+t.Kind.String())
}

func readReal(t *schema.Type, raw any) (float64, *errors.Error) {
	switch v := raw.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(v.String(), t.Kind.Width()*8)
		if err != nil {
			return 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				SchemaType(t.String()).
				Value(v.String()).
				Cause(err).
				Detail("invalid real").
				Build()
		}
		return f, nil
	case string:
		switch v {
		case "INF":
			return math.Inf(1), nil
		case "-INF":
			return math.Inf(-1), nil
		case "NaN":
			return math.NaN(), nil
		}
		return 0, errors.InvalidData(errors.PhaseDecode, nil, fmt.Sprintf("invalid real %q", v))
	}
	return 0, unexpected(t, raw)
}

func unsignedAs(k schema.Kind, u uint64) any {
	switch k {
	case schema.KindU8:
		return uint8(u)
	case schema.KindU16:
		return uint16(u)
	case schema.KindU32:
		return uint32(u)
	}
	return u
}

func signedAs(k schema.Kind, i int64) any {
	switch k {
	case schema.KindS8:
		return int8(i)
	case schema.KindS16:
		return int16(i)
	case schema.KindS32:
		return int32(i)
	}
	return i
}

func readSequence(t *schema.Type, raw any) (any, *errors.Error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, unexpected(t, raw)
	}

	out := make(map[string]any, len(t.Fields))
	for _, f := range t.Fields {
		fv, present := obj[f.Name]
		if !present {
			return nil, errors.FieldMissing(errors.PhaseDecode, nil, f.Name)
		}
		v, err := readValue(f.Type, fv)
		if err != nil {
			return nil, err.Prefix(f.Name)
		}
		out[f.Name] = v
	}
	if len(obj) > len(t.Fields) {
		for k := range obj {
			if _, known := t.FieldIndex(k); !known {
				return nil, errors.FieldUnknown(errors.PhaseDecode, nil, k)
			}
		}
	}
	return out, nil
}

func readChoice(t *schema.Type, raw any) (any, *errors.Error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, unexpected(t, raw)
	}
	if len(obj) != 1 {
		return nil, errors.BadChoice(errors.PhaseDecode, nil,
			fmt.Sprintf("choice object has %d keys, want 1", len(obj)), len(obj))
	}

	for name, payload := range obj {
		idx, found := t.FieldIndex(name)
		if !found {
			return nil, errors.BadChoice(errors.PhaseDecode, nil,
				fmt.Sprintf("unknown variant %q", name), name)
		}
		variant := t.Fields[idx]
		if variant.Type == nil {
			if payload != nil {
				return nil, errors.InvalidData(errors.PhaseDecode, []string{name}, "variant without payload must be null")
			}
			return codec.Selected{Name: name}, nil
		}
		v, err := readValue(variant.Type, payload)
		if err != nil {
			return nil, err.Prefix(name)
		}
		return codec.Selected{Name: name, Value: v}, nil
	}
	return nil, nil
}

func readSequenceOf(t *schema.Type, raw any) (any, *errors.Error) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, unexpected(t, raw)
	}
	if len(arr) > t.Max {
		return nil, errors.BadLength(errors.PhaseDecode, nil, len(arr), t.Max)
	}

	out := make([]any, len(arr))
	for i, elem := range arr {
		v, err := readValue(t.Elem, elem)
		if err != nil {
			return nil, err.Prefix("[" + strconv.Itoa(i) + "]")
		}
		out[i] = v
	}
	return out, nil
}
