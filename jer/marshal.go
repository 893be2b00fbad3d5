package jer

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/wippyai/oer/codec"
	"github.com/wippyai/oer/errors"
	"github.com/wippyai/oer/internal/coerce"
	"github.com/wippyai/oer/schema"
)

// Marshal renders v as compact JER JSON.
func Marshal(t *schema.Type, v any) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeValue(&buf, t, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mismatch(t *schema.Type, v any) *errors.Error {
	return errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), t.String())
}

func writeValue(buf *bytes.Buffer, t *schema.Type, v any) *errors.Error {
	switch t.Kind {
	case schema.KindBool:
		b, ok := v.(bool)
		if !ok {
			return mismatch(t, v)
		}
		buf.WriteString(strconv.FormatBool(b))

	case schema.KindU8, schema.KindU16, schema.KindU32, schema.KindU64:
		u, ok := coerce.Unsigned(v, t.Kind.Width()*8)
		if !ok {
			return numberError(t, v)
		}
		buf.WriteString(strconv.FormatUint(u, 10))

	case schema.KindS8, schema.KindS16, schema.KindS32, schema.KindS64:
		i, ok := coerce.Signed(v, t.Kind.Width()*8)
		if !ok {
			return numberError(t, v)
		}
		buf.WriteString(strconv.FormatInt(i, 10))

	case schema.KindF32, schema.KindF64:
		f, ok := coerce.ToFloat64(v)
		if !ok {
			return mismatch(t, v)
		}
		writeReal(buf, f, t.Kind.Width()*8)

	case schema.KindOctets:
		b, ok := codec.AsOctets(v)
		if !ok {
			return mismatch(t, v)
		}
		if len(b) != t.Size {
			return errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Detail("octet string has %d bytes, want %d", len(b), t.Size).
				Build()
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ToUpper(hex.EncodeToString(b)))
		buf.WriteByte('"')

	case schema.KindSequence:
		return writeSequence(buf, t, v)

	case schema.KindChoice:
		return writeChoice(buf, t, v)

	case schema.KindSequenceOf:
		return writeSequenceOf(buf, t, v)

	default:
		return errors.Unsupported(errors.PhaseEncode, "schema kind: "+t.Kind.String())
	}
	return nil
}

func numberError(t *schema.Type, v any) *errors.Error {
	if _, isNum := coerce.ToFloat64(v); isNum {
		return errors.Overflow(errors.PhaseEncode, nil, v, t.Kind.String())
	}
	return mismatch(t, v)
}

// writeReal writes the special values as the strings JER reserves for them.
func writeReal(buf *bytes.Buffer, f float64, bits int) {
	switch {
	case math.IsNaN(f):
		buf.WriteString(`"NaN"`)
	case math.IsInf(f, 1):
		buf.WriteString(`"INF"`)
	case math.IsInf(f, -1):
		buf.WriteString(`"-INF"`)
	default:
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, bits))
	}
}

func writeKey(buf *bytes.Buffer, name string) {
	key, _ := json.Marshal(name)
	buf.Write(key)
	buf.WriteByte(':')
}

func writeSequence(buf *bytes.Buffer, t *schema.Type, v any) *errors.Error {
	m, ok := v.(map[string]any)
	if !ok {
		return mismatch(t, v)
	}
	for k := range m {
		if _, known := t.FieldIndex(k); !known {
			return errors.FieldUnknown(errors.PhaseEncode, nil, k)
		}
	}

	buf.WriteByte('{')
	for i, f := range t.Fields {
		fv, present := m[f.Name]
		if !present {
			return errors.FieldMissing(errors.PhaseEncode, nil, f.Name)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(buf, f.Name)
		if err := writeValue(buf, f.Type, fv); err != nil {
			return err.Prefix(f.Name)
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeChoice(buf *bytes.Buffer, t *schema.Type, v any) *errors.Error {
	sel, ok := codec.AsSelected(v)
	if !ok {
		return errors.BadChoice(errors.PhaseEncode, nil,
			fmt.Sprintf("value of type %T selects no variant", v), nil)
	}
	idx, found := t.FieldIndex(sel.Name)
	if !found {
		return errors.BadChoice(errors.PhaseEncode, nil,
			fmt.Sprintf("unknown variant %q", sel.Name), sel.Name)
	}

	variant := t.Fields[idx]
	buf.WriteByte('{')
	writeKey(buf, variant.Name)
	if variant.Type == nil {
		buf.WriteString("null")
	} else if err := writeValue(buf, variant.Type, sel.Value); err != nil {
		return err.Prefix(variant.Name)
	}
	buf.WriteByte('}')
	return nil
}

func writeSequenceOf(buf *bytes.Buffer, t *schema.Type, v any) *errors.Error {
	rv := reflect.ValueOf(v)
	if v == nil {
		rv = reflect.ValueOf([]any(nil))
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return mismatch(t, v)
	}
	n := rv.Len()
	if n > t.Max {
		return errors.BadLength(errors.PhaseEncode, nil, n, t.Max)
	}

	buf.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeValue(buf, t.Elem, rv.Index(i).Interface()); err != nil {
			return err.Prefix("[" + strconv.Itoa(i) + "]")
		}
	}
	buf.WriteByte(']')
	return nil
}
