package codec

import (
	"fmt"
	"reflect"
	"strconv"
	"unsafe"

	"github.com/wippyai/oer/codec/internal/cursor"
	"github.com/wippyai/oer/errors"
	"github.com/wippyai/oer/schema"
)

type Encoder struct {
	compiler *Compiler
}

func NewEncoder() *Encoder {
	return &Encoder{
		compiler: NewCompiler(),
	}
}

func NewEncoderWithCompiler(c *Compiler) *Encoder {
	return &Encoder{compiler: c}
}

var defaultEncoder = NewEncoderWithCompiler(defaultCompiler)

// Encode writes the OER encoding of v into dst using the compiled binding
// of t. It returns the number of bytes written. On failure the count is the
// negated error code and err is an *errors.Error with the same code.
func Encode(dst []byte, t *schema.Type, v any) (int, error) {
	return defaultEncoder.Encode(dst, t, v)
}

// Marshal encodes v into a freshly allocated slice.
func Marshal(t *schema.Type, v any) ([]byte, error) {
	return defaultEncoder.Marshal(t, v)
}

func (e *Encoder) Encode(dst []byte, t *schema.Type, v any) (int, error) {
	ptr, goType, err := valuePointer(v)
	if err != nil {
		return -err.Code(), err
	}
	ct, cerr := e.compiler.Compile(t, goType)
	if cerr != nil {
		return -errors.CodeOf(cerr), cerr
	}
	return e.encode(dst, ct, ptr)
}

// Marshal encodes into pooled scratch buffers grown on demand up to the
// largest encoding of t and returns a copy of the written bytes.
func (e *Encoder) Marshal(t *schema.Type, v any) ([]byte, error) {
	ptr, goType, err := valuePointer(v)
	if err != nil {
		return nil, err
	}
	ct, cerr := e.compiler.Compile(t, goType)
	if cerr != nil {
		return nil, cerr
	}

	return marshalGrow(t.MaxSize(), func(dst []byte) (int, error) {
		return e.encode(dst, ct, ptr)
	})
}

func (e *Encoder) encode(dst []byte, ct *CompiledType, ptr unsafe.Pointer) (int, error) {
	var w cursor.Writer
	w.Init(dst, len(dst))
	if err := e.encodeField(&w, ct, ptr); err != nil {
		logAbort("encode aborted", err, w.FailPos())
		return w.Result(), err
	}
	return w.Result(), nil
}

// valuePointer returns an addressable pointer to v's data. Non-pointer
// values are copied so the walker never reads through an interface word.
func valuePointer(v any) (unsafe.Pointer, reflect.Type, *errors.Error) {
	if v == nil {
		return nil, nil, errors.NilPointer(errors.PhaseEncode, nil, "nil")
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, nil, errors.NilPointer(errors.PhaseEncode, nil, rv.Type().String())
		}
		if rv.Type().Elem().Kind() == reflect.Ptr {
			return nil, nil, errors.TypeMismatch(errors.PhaseEncode, nil, rv.Type().String(), "value or single pointer")
		}
		return rv.UnsafePointer(), rv.Type().Elem(), nil
	}
	cp := reflect.New(rv.Type())
	cp.Elem().Set(rv)
	return cp.UnsafePointer(), rv.Type(), nil
}

func (e *Encoder) encodeField(w *cursor.Writer, ct *CompiledType, ptr unsafe.Pointer) *errors.Error {
	switch ct.Kind {
	case schema.KindBool:
		w.AppendBool(*(*bool)(ptr))

	case schema.KindU8:
		w.AppendU8(*(*uint8)(ptr))

	case schema.KindS8:
		w.AppendU8(uint8(*(*int8)(ptr)))

	case schema.KindU16:
		w.AppendU16(*(*uint16)(ptr))

	case schema.KindS16:
		w.AppendU16(uint16(*(*int16)(ptr)))

	case schema.KindU32:
		w.AppendU32(*(*uint32)(ptr))

	case schema.KindS32:
		w.AppendU32(uint32(*(*int32)(ptr)))

	case schema.KindU64:
		w.AppendU64(*(*uint64)(ptr))

	case schema.KindS64:
		w.AppendU64(uint64(*(*int64)(ptr)))

	case schema.KindF32:
		w.AppendF32(*(*float32)(ptr))

	case schema.KindF64:
		w.AppendF64(*(*float64)(ptr))

	case schema.KindOctets:
		w.AppendBytes(unsafe.Slice((*byte)(ptr), ct.Size))

	case schema.KindSequence:
		return e.encodeSequence(w, ct, ptr)

	case schema.KindChoice:
		return e.encodeChoice(w, ct, ptr)

	case schema.KindSequenceOf:
		return e.encodeSequenceOf(w, ct, ptr)

	default:
		w.Abort(errors.CodeInvalid)
		return errors.Unsupported(errors.PhaseEncode, "schema kind: "+ct.Kind.String())
	}

	if w.Failed() {
		return w.Err()
	}
	return nil
}

func (e *Encoder) encodeSequence(w *cursor.Writer, ct *CompiledType, ptr unsafe.Pointer) *errors.Error {
	for i := range ct.Fields {
		f := &ct.Fields[i]
		if err := e.encodeField(w, f.Type, unsafe.Add(ptr, f.GoOffset)); err != nil {
			return err.Prefix(f.Name)
		}
	}
	return nil
}

func (e *Encoder) encodeChoice(w *cursor.Writer, ct *CompiledType, ptr unsafe.Pointer) *errors.Error {
	selected := -1
	for i := range ct.Cases {
		if *(*unsafe.Pointer)(unsafe.Add(ptr, ct.Cases[i].GoOffset)) == nil {
			continue
		}
		if selected >= 0 {
			w.Abort(errors.CodeBadChoice)
			return errors.BadChoice(errors.PhaseEncode, nil,
				fmt.Sprintf("variants %q and %q are both set", ct.Cases[selected].Name, ct.Cases[i].Name), nil)
		}
		selected = i
	}
	if selected < 0 {
		w.Abort(errors.CodeBadChoice)
		return errors.BadChoice(errors.PhaseEncode, nil, "no variant is set", nil)
	}

	c := &ct.Cases[selected]
	w.AppendU8(c.Tag)
	if w.Failed() {
		return w.Err()
	}
	if c.Type == nil {
		return nil
	}
	payload := *(*unsafe.Pointer)(unsafe.Add(ptr, c.GoOffset))
	if err := e.encodeField(w, c.Type, payload); err != nil {
		return err.Prefix(c.Name)
	}
	return nil
}

func (e *Encoder) encodeSequenceOf(w *cursor.Writer, ct *CompiledType, ptr unsafe.Pointer) *errors.Error {
	sv := reflect.NewAt(ct.GoType, ptr).Elem()
	n := sv.Len()
	if n > ct.Max {
		w.Abort(errors.CodeBadLength)
		return errors.BadLength(errors.PhaseEncode, nil, n, ct.Max)
	}

	w.AppendU8(schema.SequenceOfMarker)
	w.AppendU8(uint8(n))
	if w.Failed() {
		return w.Err()
	}
	if n == 0 {
		return nil
	}

	base := sv.UnsafePointer()

	// Single-byte elements are copied in one go
	switch ct.ElemType.Kind {
	case schema.KindU8, schema.KindS8:
		w.AppendBytes(unsafe.Slice((*byte)(base), n))
		if w.Failed() {
			return w.Err()
		}
		return nil
	}

	stride := ct.ElemType.GoSize
	for i := 0; i < n; i++ {
		if err := e.encodeField(w, ct.ElemType, unsafe.Add(base, uintptr(i)*stride)); err != nil {
			return err.Prefix("[" + strconv.Itoa(i) + "]")
		}
	}
	return nil
}
