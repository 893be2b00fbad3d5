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

type Decoder struct {
	compiler *Compiler
}

func NewDecoder() *Decoder {
	return &Decoder{
		compiler: NewCompiler(),
	}
}

func NewDecoderWithCompiler(c *Compiler) *Decoder {
	return &Decoder{compiler: c}
}

var defaultDecoder = NewDecoderWithCompiler(defaultCompiler)

// Decode reads one value of type t from src into dst, which must be a
// non-nil pointer. It returns the number of bytes consumed. On failure the
// count is the negated error code, err carries the same code and every
// part of *dst after the failure point holds its zero value.
func Decode(dst any, t *schema.Type, src []byte) (int, error) {
	return defaultDecoder.Decode(dst, t, src)
}

func (d *Decoder) Decode(dst any, t *schema.Type, src []byte) (int, error) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		err := errors.New(errors.PhaseDecode, errors.KindNilPointer).
			Detail("destination must be a non-nil pointer, got %T", dst).
			Build()
		return -err.Code(), err
	}
	goType := rv.Type().Elem()
	if goType.Kind() == reflect.Ptr {
		err := errors.TypeMismatch(errors.PhaseDecode, nil, rv.Type().String(), "single pointer")
		return -err.Code(), err
	}

	ct, err := d.compiler.Compile(t, goType)
	if err != nil {
		return -errors.CodeOf(err), err
	}
	return d.decode(src, ct, rv.UnsafePointer())
}

func (d *Decoder) decode(src []byte, ct *CompiledType, ptr unsafe.Pointer) (int, error) {
	var r cursor.Reader
	r.Init(src, len(src))
	if err := d.decodeField(&r, ct, ptr); err != nil {
		logAbort("decode aborted", err, r.FailPos())
		return r.Result(), err
	}
	return r.Result(), nil
}

func (d *Decoder) decodeField(r *cursor.Reader, ct *CompiledType, ptr unsafe.Pointer) *errors.Error {
	switch ct.Kind {
	case schema.KindBool:
		*(*bool)(ptr) = r.ReadBool()

	case schema.KindU8:
		*(*uint8)(ptr) = r.ReadU8()

	case schema.KindS8:
		*(*int8)(ptr) = int8(r.ReadU8())

	case schema.KindU16:
		*(*uint16)(ptr) = r.ReadU16()

	case schema.KindS16:
		*(*int16)(ptr) = int16(r.ReadU16())

	case schema.KindU32:
		*(*uint32)(ptr) = r.ReadU32()

	case schema.KindS32:
		*(*int32)(ptr) = int32(r.ReadU32())

	case schema.KindU64:
		*(*uint64)(ptr) = r.ReadU64()

	case schema.KindS64:
		*(*int64)(ptr) = int64(r.ReadU64())

	case schema.KindF32:
		*(*float32)(ptr) = r.ReadF32()

	case schema.KindF64:
		*(*float64)(ptr) = r.ReadF64()

	case schema.KindOctets:
		r.ReadBytes(unsafe.Slice((*byte)(ptr), ct.Size))

	case schema.KindSequence:
		return d.decodeSequence(r, ct, ptr)

	case schema.KindChoice:
		return d.decodeChoice(r, ct, ptr)

	case schema.KindSequenceOf:
		return d.decodeSequenceOf(r, ct, ptr)

	default:
		r.Abort(errors.CodeInvalid)
		return errors.Unsupported(errors.PhaseDecode, "schema kind: "+ct.Kind.String())
	}

	if r.Failed() {
		return r.Err()
	}
	return nil
}

func (d *Decoder) decodeSequence(r *cursor.Reader, ct *CompiledType, ptr unsafe.Pointer) *errors.Error {
	for i := range ct.Fields {
		f := &ct.Fields[i]
		if err := d.decodeField(r, f.Type, unsafe.Add(ptr, f.GoOffset)); err != nil {
			for _, rest := range ct.Fields[i+1:] {
				zeroValue(rest.Type, unsafe.Add(ptr, rest.GoOffset))
			}
			return err.Prefix(f.Name)
		}
	}
	return nil
}

func (d *Decoder) decodeChoice(r *cursor.Reader, ct *CompiledType, ptr unsafe.Pointer) *errors.Error {
	// Clear all case fields
	for _, c := range ct.Cases {
		*(*unsafe.Pointer)(unsafe.Add(ptr, c.GoOffset)) = nil
	}

	tag := r.ReadU8()
	if r.Failed() {
		return r.Err()
	}
	idx, ok := schema.TagIndex(tag, len(ct.Cases))
	if !ok {
		r.Abort(errors.CodeBadChoice)
		return errors.BadChoice(errors.PhaseDecode, nil, fmt.Sprintf("unknown tag 0x%02x", tag), tag)
	}

	c := &ct.Cases[idx]
	caseField := (*unsafe.Pointer)(unsafe.Add(ptr, c.GoOffset))
	if c.GoType.Size() == 0 {
		*caseField = UnitPtr()
	} else {
		*caseField = reflect.New(c.GoType).UnsafePointer()
	}

	if c.Type == nil {
		return nil
	}
	if err := d.decodeField(r, c.Type, *caseField); err != nil {
		return err.Prefix(c.Name)
	}
	return nil
}

func (d *Decoder) decodeSequenceOf(r *cursor.Reader, ct *CompiledType, ptr unsafe.Pointer) *errors.Error {
	sv := reflect.NewAt(ct.GoType, ptr).Elem()

	r.ReadU8() // marker is not validated
	count := int(r.ReadU8())
	if r.Failed() {
		sv.SetLen(0)
		return r.Err()
	}
	if count > ct.Max {
		sv.SetLen(0)
		r.Abort(errors.CodeBadLength)
		return errors.BadLength(errors.PhaseDecode, nil, count, ct.Max)
	}

	// Reuse the caller's backing array when it is large enough
	if sv.Cap() < count {
		sv.Set(reflect.MakeSlice(ct.GoType, count, count))
	} else {
		sv.SetLen(count)
	}
	if count == 0 {
		return nil
	}

	base := sv.UnsafePointer()

	switch ct.ElemType.Kind {
	case schema.KindU8, schema.KindS8:
		r.ReadBytes(unsafe.Slice((*byte)(base), count))
		if r.Failed() {
			return r.Err()
		}
		return nil
	}

	stride := ct.ElemType.GoSize
	for i := 0; i < count; i++ {
		if err := d.decodeField(r, ct.ElemType, unsafe.Add(base, uintptr(i)*stride)); err != nil {
			for j := i + 1; j < count; j++ {
				zeroValue(ct.ElemType, unsafe.Add(base, uintptr(j)*stride))
			}
			return err.Prefix("[" + strconv.Itoa(i) + "]")
		}
	}
	return nil
}

// zeroValue resets the Go value at ptr. Reused slice capacity may hold
// data from an earlier decode, so skipped values are cleared explicitly.
func zeroValue(ct *CompiledType, ptr unsafe.Pointer) {
	reflect.NewAt(ct.GoType, ptr).Elem().SetZero()
}
