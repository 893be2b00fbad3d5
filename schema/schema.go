package schema

import (
	"strconv"
	"strings"
)

const (
	// TagBase is the tag byte of the first choice variant.
	TagBase = 0x80
	// MaxVariants keeps every tag a single short-form context tag (0x80..0xBE).
	MaxVariants = 63
	// MaxCount is the largest count a one-byte sequence-of length can carry.
	MaxCount = 255
	// SequenceOfMarker is written before every sequence-of count.
	SequenceOfMarker = 0x01
)

// Type is a node of a schema descriptor tree.
//
// Scalars carry only Kind (and Size for octets). Sequences and choices carry
// Fields in declared order. Sequence-of carries Elem and Max.
// A Type must not be modified once it has been handed to a codec.
type Type struct {
	Elem   *Type
	Name   string
	Fields []Field
	Size   int
	Max    int
	Kind   Kind
}

// Field is a named sequence member or choice variant. A choice variant
// with a nil Type has an empty payload.
type Field struct {
	Type *Type
	Name string
}

func Bool() *Type    { return &Type{Kind: KindBool} }
func U8() *Type      { return &Type{Kind: KindU8} }
func S8() *Type      { return &Type{Kind: KindS8} }
func U16() *Type     { return &Type{Kind: KindU16} }
func S16() *Type     { return &Type{Kind: KindS16} }
func U32() *Type     { return &Type{Kind: KindU32} }
func S32() *Type     { return &Type{Kind: KindS32} }
func U64() *Type     { return &Type{Kind: KindU64} }
func S64() *Type     { return &Type{Kind: KindS64} }
func Float32() *Type { return &Type{Kind: KindF32} }
func Float64() *Type { return &Type{Kind: KindF64} }

// Octets is a fixed-length octet string of exactly n bytes.
func Octets(n int) *Type {
	return &Type{Kind: KindOctets, Size: n}
}

// Sequence lists members encoded in declared order.
func Sequence(members ...Field) *Type {
	return &Type{Kind: KindSequence, Fields: members}
}

// Choice lists variants; variant i is tagged TagBase+i.
func Choice(variants ...Field) *Type {
	return &Type{Kind: KindChoice, Fields: variants}
}

// SequenceOf is a list of up to maxCount elements of one type.
func SequenceOf(elem *Type, maxCount int) *Type {
	return &Type{Kind: KindSequenceOf, Elem: elem, Max: maxCount}
}

// Member builds a sequence member.
func Member(name string, t *Type) Field {
	return Field{Name: name, Type: t}
}

// Variant builds a choice variant. Pass a nil t for an empty payload.
func Variant(name string, t *Type) Field {
	return Field{Name: name, Type: t}
}

// Named returns a copy of t carrying a type name for diagnostics.
func (t *Type) Named(name string) *Type {
	cp := *t
	cp.Name = name
	return &cp
}

// FieldIndex returns the position of the named member or variant.
func (t *Type) FieldIndex(name string) (int, bool) {
	for i, f := range t.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Tag returns the wire tag of variant index i.
func Tag(i int) byte {
	return byte(TagBase + i)
}

// TagIndex maps a wire tag back to a variant index of a choice with n variants.
func TagIndex(tag byte, n int) (int, bool) {
	if tag < TagBase {
		return 0, false
	}
	i := int(tag - TagBase)
	if i >= n {
		return 0, false
	}
	return i, true
}

// String renders the descriptor in an ASN.1-like notation.
func (t *Type) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Type) write(b *strings.Builder) {
	if t == nil {
		b.WriteString("NULL")
		return
	}
	if t.Name != "" {
		b.WriteString(t.Name)
		return
	}
	switch t.Kind {
	case KindOctets:
		b.WriteString("OCTET STRING (SIZE (")
		b.WriteString(strconv.Itoa(t.Size))
		b.WriteString("))")
	case KindSequence, KindChoice:
		if t.Kind == KindSequence {
			b.WriteString("SEQUENCE {")
		} else {
			b.WriteString("CHOICE {")
		}
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte(' ')
			b.WriteString(f.Name)
			b.WriteByte(' ')
			f.Type.write(b)
		}
		b.WriteString(" }")
	case KindSequenceOf:
		b.WriteString("SEQUENCE (SIZE (0..")
		b.WriteString(strconv.Itoa(t.Max))
		b.WriteString(")) OF ")
		t.Elem.write(b)
	default:
		b.WriteString(t.Kind.String())
	}
}
