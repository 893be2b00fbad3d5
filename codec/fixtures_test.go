package codec

import "github.com/wippyai/oer/schema"

// Sample types A through G cover every construct: all scalar widths,
// choices with and without payload, nested choices and nested
// sequence-of.

var typeA = schema.Sequence(
	schema.Member("a", schema.S8()),
	schema.Member("b", schema.S16()),
	schema.Member("c", schema.S32()),
	schema.Member("d", schema.S64()),
	schema.Member("e", schema.U8()),
	schema.Member("f", schema.U16()),
	schema.Member("g", schema.U32()),
	schema.Member("h", schema.U64()),
	schema.Member("i", schema.Float32()),
	schema.Member("j", schema.Float64()),
	schema.Member("k", schema.Bool()),
	schema.Member("l", schema.Octets(11)),
)

type TypeA struct {
	A int8
	B int16
	C int32
	D int64
	E uint8
	F uint16
	G uint32
	H uint64
	I float32
	J float64
	K bool
	L [11]byte
}

var typeB = schema.Choice(
	schema.Variant("a", schema.S8()),
	schema.Variant("b", typeA),
	schema.Variant("c", nil),
)

type TypeB struct {
	A *int8
	B *TypeA
	C *struct{}
}

var typeC = schema.SequenceOf(typeB, 2)

type TypeC []TypeB

var typeD = schema.SequenceOf(schema.Sequence(
	schema.Member("a", schema.Sequence(
		schema.Member("b", schema.Choice(
			schema.Variant("c", schema.U8()),
			schema.Variant("d", schema.Bool()),
		)),
		schema.Member("e", schema.SequenceOf(schema.Bool(), 4)),
	)),
	schema.Member("g", schema.Sequence(
		schema.Member("l", schema.Octets(2)),
	)),
	schema.Member("m", schema.Sequence(
		schema.Member("n", schema.Bool()),
		schema.Member("o", schema.U8()),
		schema.Member("p", schema.Sequence(
			schema.Member("q", schema.Octets(5)),
			schema.Member("r", schema.Bool()),
		)),
	)),
), 10)

type TypeDChoice struct {
	C *uint8
	D *bool
}

type TypeDElem struct {
	A struct {
		B TypeDChoice
		E []bool
	}
	G struct {
		L [2]byte
	}
	M struct {
		N bool
		O uint8
		P struct {
			Q [5]byte
			R bool
		}
	}
}

type TypeD []TypeDElem

var typeE = schema.Sequence(
	schema.Member("a", schema.Choice(
		schema.Variant("b", schema.Choice(
			schema.Variant("c", schema.Bool()),
		)),
	)),
)

type TypeEInner struct {
	C *bool
}

type TypeE struct {
	A struct {
		B *TypeEInner
	}
}

var typeF = schema.SequenceOf(schema.SequenceOf(schema.Bool(), 1), 2)

type TypeF [][]bool

var typeG = schema.Sequence(
	schema.Member("a", schema.Bool()),
	schema.Member("b", schema.Bool()),
	schema.Member("c", schema.Bool()),
	schema.Member("d", schema.Bool()),
	schema.Member("e", schema.Bool()),
	schema.Member("f", schema.Bool()),
	schema.Member("g", schema.Bool()),
	schema.Member("h", schema.Bool()),
	schema.Member("i", schema.Bool()),
)

type TypeG struct {
	A, B, C, D, E, F, G, H, I bool
}

func ptr[T any](v T) *T {
	return &v
}

func sampleA() TypeA {
	return TypeA{
		A: -1, B: -2, C: -3, D: -4,
		E: 1, F: 2, G: 3, H: 4,
		I: 1.0, J: 1.0, K: true,
		L: [11]byte{'h', 'e', 'l', 'l', 'o', ' ', 'w', 'o', 'r', 'l', 'd'},
	}
}

// sampleABytes is the encoding of sampleA.
var sampleABytes = []byte{
	0xff,
	0xff, 0xfe,
	0xff, 0xff, 0xff, 0xfd,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfc,
	0x01,
	0x00, 0x02,
	0x00, 0x00, 0x00, 0x03,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04,
	0x3f, 0x80, 0x00, 0x00,
	0x3f, 0xf0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xff,
	'h', 'e', 'l', 'l', 'o', ' ', 'w', 'o', 'r', 'l', 'd',
}
