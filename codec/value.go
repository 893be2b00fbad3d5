package codec

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/wippyai/oer/codec/internal/cursor"
	"github.com/wippyai/oer/errors"
	"github.com/wippyai/oer/internal/coerce"
	"github.com/wippyai/oer/schema"
)

// Selected is the dynamic form of a choice value: the chosen variant's
// name and its payload (nil for a variant without payload).
type Selected struct {
	Value any
	Name  string
}

// EncodeValue encodes a dynamic value walking t directly, without a Go type
// binding. Values are shaped as follows:
//
//	bool           bool
//	integers       any Go integer, integral float, or json.Number in range
//	reals          any Go number or json.Number
//	octets         []byte or [n]byte of exactly the declared size
//	sequence       map[string]any keyed by member name
//	choice         Selected, *Selected, or a map with exactly one key
//	sequence-of    any slice or array
//
// The return contract matches Encode.
func EncodeValue(dst []byte, t *schema.Type, v any) (int, error) {
	if err := t.Validate(); err != nil {
		return -errors.CodeOf(err), err
	}
	var w cursor.Writer
	w.Init(dst, len(dst))
	if err := encodeValue(&w, t, v); err != nil {
		logAbort("encode aborted", err, w.FailPos())
		return w.Result(), err
	}
	return w.Result(), nil
}

// MarshalValue is EncodeValue into a freshly allocated slice.
func MarshalValue(t *schema.Type, v any) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return marshalGrow(t.MaxSize(), func(dst []byte) (int, error) {
		return EncodeValue(dst, t, v)
	})
}

// DecodeValue decodes one value of type t into its dynamic form: bool,
// the exact-width Go integer or float, []byte, map[string]any, Selected
// and []any. On failure the returned value is still fully shaped, with
// zero values after the failure point.
func DecodeValue(t *schema.Type, src []byte) (any, int, error) {
	if err := t.Validate(); err != nil {
		return nil, -errors.CodeOf(err), err
	}
	var r cursor.Reader
	r.Init(src, len(src))
	v, err := decodeValue(&r, t)
	if err != nil {
		logAbort("decode aborted", err, r.FailPos())
		return v, r.Result(), err
	}
	return v, r.Result(), nil
}

func mismatch(w *cursor.Writer, t *schema.Type, v any) *errors.Error {
	w.Abort(errors.CodeInvalid)
	return errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), t.String())
}

func encodeValue(w *cursor.Writer, t *schema.Type, v any) *errors.Error {
	switch t.Kind {
	case schema.KindBool:
		b, ok := v.(bool)
		if !ok {
			return mismatch(w, t, v)
		}
		w.AppendBool(b)

	case schema.KindU8, schema.KindU16, schema.KindU32, schema.KindU64:
		bits := t.Kind.Width() * 8
		u, ok := coerce.Unsigned(v, bits)
		if !ok {
			return overflowOrMismatch(w, t, v)
		}
		appendUint(w, u, bits)

	case schema.KindS8, schema.KindS16, schema.KindS32, schema.KindS64:
		bits := t.Kind.Width() * 8
		i, ok := coerce.Signed(v, bits)
		if !ok {
			return overflowOrMismatch(w, t, v)
		}
		appendUint(w, uint64(i), bits)

	case schema.KindF32:
		f, ok := coerce.ToFloat64(v)
		if !ok {
			return mismatch(w, t, v)
		}
		if f32, isF32 := v.(float32); isF32 {
			w.AppendF32(f32) // keep NaN payload bits
		} else {
			w.AppendF32(float32(f))
		}

	case schema.KindF64:
		f, ok := coerce.ToFloat64(v)
		if !ok {
			return mismatch(w, t, v)
		}
		w.AppendF64(f)

	case schema.KindOctets:
		b, ok := AsOctets(v)
		if !ok {
			return mismatch(w, t, v)
		}
		if len(b) != t.Size {
			w.Abort(errors.CodeInvalid)
			return errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Detail("octet string has %d bytes, want %d", len(b), t.Size).
				Value(len(b)).
				Build()
		}
		w.AppendBytes(b)

	case schema.KindSequence:
		return encodeSequenceValue(w, t, v)

	case schema.KindChoice:
		return encodeChoiceValue(w, t, v)

	case schema.KindSequenceOf:
		return encodeSequenceOfValue(w, t, v)

	default:
		w.Abort(errors.CodeInvalid)
		return errors.Unsupported(errors.PhaseEncode, "schema kind: "+t.Kind.String())
	}

	if w.Failed() {
		return w.Err()
	}
	return nil
}

// overflowOrMismatch tells a number that does not fit from a value that is
// not a number at all.
func overflowOrMismatch(w *cursor.Writer, t *schema.Type, v any) *errors.Error {
	if _, isNum := coerce.ToFloat64(v); isNum {
		w.Abort(errors.CodeInvalid)
		return errors.Overflow(errors.PhaseEncode, nil, v, t.Kind.String())
	}
	return mismatch(w, t, v)
}

func appendUint(w *cursor.Writer, u uint64, bits int) {
	switch bits {
	case 8:
		w.AppendU8(uint8(u))
	case 16:
		w.AppendU16(uint16(u))
	case 32:
		w.AppendU32(uint32(u))
	default:
		w.AppendU64(u)
	}
}

// AsOctets returns the bytes of a []byte or [n]byte value.
func AsOctets(v any) ([]byte, bool) {
	if b, ok := v.([]byte); ok {
		return b, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		b := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(b), rv)
		return b, true
	}
	return nil, false
}

func encodeSequenceValue(w *cursor.Writer, t *schema.Type, v any) *errors.Error {
	m, ok := v.(map[string]any)
	if !ok {
		return mismatch(w, t, v)
	}
	for _, f := range t.Fields {
		fv, present := m[f.Name]
		if !present {
			w.Abort(errors.CodeInvalid)
			return errors.FieldMissing(errors.PhaseEncode, nil, f.Name)
		}
		if err := encodeValue(w, f.Type, fv); err != nil {
			return err.Prefix(f.Name)
		}
	}
	if len(m) > len(t.Fields) {
		w.Abort(errors.CodeInvalid)
		return errors.FieldUnknown(errors.PhaseEncode, nil, unknownKey(t, m))
	}
	return nil
}

// unknownKey returns the first key, in sorted order, that names no member.
func unknownKey(t *schema.Type, m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		if _, ok := t.FieldIndex(k); !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// AsSelected reads a choice value given as Selected, *Selected or a
// single-key map.
func AsSelected(v any) (Selected, bool) {
	switch s := v.(type) {
	case Selected:
		return s, true
	case *Selected:
		if s != nil {
			return *s, true
		}
	case map[string]any:
		if len(s) == 1 {
			for name, val := range s {
				return Selected{Name: name, Value: val}, true
			}
		}
	}
	return Selected{}, false
}

func encodeChoiceValue(w *cursor.Writer, t *schema.Type, v any) *errors.Error {
	sel, ok := AsSelected(v)
	if !ok {
		w.Abort(errors.CodeBadChoice)
		return errors.BadChoice(errors.PhaseEncode, nil,
			fmt.Sprintf("value of type %T selects no variant", v), nil)
	}
	idx, found := t.FieldIndex(sel.Name)
	if !found {
		w.Abort(errors.CodeBadChoice)
		return errors.BadChoice(errors.PhaseEncode, nil,
			fmt.Sprintf("unknown variant %q", sel.Name), sel.Name)
	}

	w.AppendU8(schema.Tag(idx))
	if w.Failed() {
		return w.Err()
	}
	variant := t.Fields[idx]
	if variant.Type == nil {
		return nil
	}
	if err := encodeValue(w, variant.Type, sel.Value); err != nil {
		return err.Prefix(variant.Name)
	}
	return nil
}

func encodeSequenceOfValue(w *cursor.Writer, t *schema.Type, v any) *errors.Error {
	rv := reflect.ValueOf(v)
	if v == nil {
		rv = reflect.ValueOf([]any(nil))
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return mismatch(w, t, v)
	}

	n := rv.Len()
	if n > t.Max {
		w.Abort(errors.CodeBadLength)
		return errors.BadLength(errors.PhaseEncode, nil, n, t.Max)
	}

	w.AppendU8(schema.SequenceOfMarker)
	w.AppendU8(uint8(n))
	if w.Failed() {
		return w.Err()
	}
	for i := 0; i < n; i++ {
		if err := encodeValue(w, t.Elem, rv.Index(i).Interface()); err != nil {
			return err.Prefix("[" + strconv.Itoa(i) + "]")
		}
	}
	return nil
}

func decodeValue(r *cursor.Reader, t *schema.Type) (any, *errors.Error) {
	var v any
	switch t.Kind {
	case schema.KindBool:
		v = r.ReadBool()
	case schema.KindU8:
		v = r.ReadU8()
	case schema.KindS8:
		v = int8(r.ReadU8())
	case schema.KindU16:
		v = r.ReadU16()
	case schema.KindS16:
		v = int16(r.ReadU16())
	case schema.KindU32:
		v = r.ReadU32()
	case schema.KindS32:
		v = int32(r.ReadU32())
	case schema.KindU64:
		v = r.ReadU64()
	case schema.KindS64:
		v = int64(r.ReadU64())
	case schema.KindF32:
		v = r.ReadF32()
	case schema.KindF64:
		v = r.ReadF64()
	case schema.KindOctets:
		b := make([]byte, t.Size)
		r.ReadBytes(b)
		v = b

	case schema.KindSequence:
		return decodeSequenceValue(r, t)

	case schema.KindChoice:
		return decodeChoiceValue(r, t)

	case schema.KindSequenceOf:
		return decodeSequenceOfValue(r, t)

	default:
		r.Abort(errors.CodeInvalid)
		return nil, errors.Unsupported(errors.PhaseDecode, "schema kind: "+t.Kind.String())
	}

	if r.Failed() {
		return v, r.Err()
	}
	return v, nil
}

func decodeSequenceValue(r *cursor.Reader, t *schema.Type) (any, *errors.Error) {
	m := make(map[string]any, len(t.Fields))
	for i, f := range t.Fields {
		fv, err := decodeValue(r, f.Type)
		m[f.Name] = fv
		if err != nil {
			for _, rest := range t.Fields[i+1:] {
				m[rest.Name] = ZeroValue(rest.Type)
			}
			return m, err.Prefix(f.Name)
		}
	}
	return m, nil
}

func decodeChoiceValue(r *cursor.Reader, t *schema.Type) (any, *errors.Error) {
	tag := r.ReadU8()
	if r.Failed() {
		return Selected{}, r.Err()
	}
	idx, ok := schema.TagIndex(tag, len(t.Fields))
	if !ok {
		r.Abort(errors.CodeBadChoice)
		return Selected{}, errors.BadChoice(errors.PhaseDecode, nil, fmt.Sprintf("unknown tag 0x%02x", tag), tag)
	}

	variant := t.Fields[idx]
	sel := Selected{Name: variant.Name}
	if variant.Type == nil {
		return sel, nil
	}
	pv, err := decodeValue(r, variant.Type)
	sel.Value = pv
	if err != nil {
		return sel, err.Prefix(variant.Name)
	}
	return sel, nil
}

func decodeSequenceOfValue(r *cursor.Reader, t *schema.Type) (any, *errors.Error) {
	r.ReadU8() // marker is not validated
	count := int(r.ReadU8())
	if r.Failed() {
		return []any{}, r.Err()
	}
	if count > t.Max {
		r.Abort(errors.CodeBadLength)
		return []any{}, errors.BadLength(errors.PhaseDecode, nil, count, t.Max)
	}

	items := make([]any, count)
	for i := range items {
		iv, err := decodeValue(r, t.Elem)
		items[i] = iv
		if err != nil {
			for j := i + 1; j < count; j++ {
				items[j] = ZeroValue(t.Elem)
			}
			return items, err.Prefix("[" + strconv.Itoa(i) + "]")
		}
	}
	return items, nil
}

// ZeroValue returns the dynamic zero value of t: false, typed zero numbers,
// n zero octets, a map of zero members, an empty Selected or an empty list.
func ZeroValue(t *schema.Type) any {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case schema.KindBool:
		return false
	case schema.KindU8:
		return uint8(0)
	case schema.KindS8:
		return int8(0)
	case schema.KindU16:
		return uint16(0)
	case schema.KindS16:
		return int16(0)
	case schema.KindU32:
		return uint32(0)
	case schema.KindS32:
		return int32(0)
	case schema.KindU64:
		return uint64(0)
	case schema.KindS64:
		return int64(0)
	case schema.KindF32:
		return float32(0)
	case schema.KindF64:
		return float64(0)
	case schema.KindOctets:
		return make([]byte, t.Size)
	case schema.KindSequence:
		m := make(map[string]any, len(t.Fields))
		for _, f := range t.Fields {
			m[f.Name] = ZeroValue(f.Type)
		}
		return m
	case schema.KindChoice:
		return Selected{}
	case schema.KindSequenceOf:
		return []any{}
	}
	return nil
}
