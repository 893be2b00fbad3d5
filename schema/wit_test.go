package schema

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/oer/errors"
	"go.bytecodealliance.org/wit"
)

func TestFromWIT_Primitives(t *testing.T) {
	tests := []struct {
		typ  wit.Type
		want Kind
	}{
		{wit.Bool{}, KindBool},
		{wit.U8{}, KindU8},
		{wit.S8{}, KindS8},
		{wit.U16{}, KindU16},
		{wit.S16{}, KindS16},
		{wit.U32{}, KindU32},
		{wit.S32{}, KindS32},
		{wit.U64{}, KindU64},
		{wit.S64{}, KindS64},
		{wit.F32{}, KindF32},
		{wit.F64{}, KindF64},
	}

	for _, tc := range tests {
		t.Run(tc.want.String(), func(t *testing.T) {
			st, err := FromWIT(tc.typ, nil)
			if err != nil {
				t.Fatalf("FromWIT: %v", err)
			}
			if st.Kind != tc.want {
				t.Errorf("Kind = %s, want %s", st.Kind, tc.want)
			}
		})
	}
}

func TestFromWIT_Record(t *testing.T) {
	record := &wit.TypeDef{
		Kind: &wit.Record{
			Fields: []wit.Field{
				{Name: "id", Type: wit.U32{}},
				{Name: "tags", Type: &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}},
				{Name: "pair", Type: &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.Bool{}, wit.F64{}}}}},
			},
		},
	}

	st, err := FromWIT(record, &WITOptions{ListMax: map[string]int{"tags": 4}})
	if err != nil {
		t.Fatalf("FromWIT: %v", err)
	}

	want := "SEQUENCE { id u32, tags SEQUENCE (SIZE (0..4)) OF u8, pair SEQUENCE { 0 bool, 1 f64 } }"
	if got := st.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestFromWIT_VariantAndEnum(t *testing.T) {
	variant := &wit.TypeDef{
		Kind: &wit.Variant{
			Cases: []wit.Case{
				{Name: "none"},
				{Name: "small", Type: wit.U8{}},
				{Name: "list", Type: &wit.TypeDef{Kind: &wit.List{Type: wit.Bool{}}}},
			},
		},
	}

	st, err := FromWIT(variant, &WITOptions{DefaultListMax: 2})
	if err != nil {
		t.Fatalf("FromWIT: %v", err)
	}
	if st.Kind != KindChoice || len(st.Fields) != 3 {
		t.Fatalf("got %s with %d variants", st.Kind, len(st.Fields))
	}
	if st.Fields[0].Type != nil {
		t.Error("case without payload should map to an empty variant")
	}
	if st.Fields[2].Type.Max != 2 {
		t.Errorf("default list bound = %d, want 2", st.Fields[2].Type.Max)
	}

	enum := &wit.TypeDef{
		Kind: &wit.Enum{Cases: []wit.EnumCase{{Name: "red"}, {Name: "green"}}},
	}
	st, err = FromWIT(enum, nil)
	if err != nil {
		t.Fatalf("FromWIT enum: %v", err)
	}
	if st.Kind != KindChoice || len(st.Fields) != 2 || st.Fields[1].Type != nil {
		t.Errorf("enum mapped to %s", st)
	}
}

func TestFromWIT_Errors(t *testing.T) {
	tests := []struct {
		name string
		typ  wit.Type
		opts *WITOptions
		kind errors.Kind
	}{
		{"string", wit.String{}, nil, errors.KindUnsupported},
		{"char", wit.Char{}, nil, errors.KindUnsupported},
		{"option", &wit.TypeDef{Kind: &wit.Option{Type: wit.U8{}}}, nil, errors.KindUnsupported},
		{"unbounded list", &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}, nil, errors.KindInvalidInput},
		{"bound over max", &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}, &WITOptions{DefaultListMax: 1000}, errors.KindOverflow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromWIT(tc.typ, tc.opts)
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("expected *errors.Error, got %v", err)
			}
			if e.Kind != tc.kind {
				t.Errorf("Kind = %s, want %s", e.Kind, tc.kind)
			}
		})
	}
}
