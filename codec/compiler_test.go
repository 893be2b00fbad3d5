package codec

import (
	"bytes"
	"reflect"
	"sync"
	"testing"

	"github.com/wippyai/oer/errors"
	"github.com/wippyai/oer/schema"
)

func TestCompiler_Sequence(t *testing.T) {
	c := NewCompiler()

	ct, err := c.Compile(typeA, reflect.TypeOf(TypeA{}))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if ct.Kind != schema.KindSequence {
		t.Errorf("Kind = %v, want sequence", ct.Kind)
	}
	if len(ct.Fields) != 12 {
		t.Fatalf("Fields len = %d, want 12", len(ct.Fields))
	}
	lField, _ := reflect.TypeOf(TypeA{}).FieldByName("L")
	if ct.Fields[11].GoOffset != lField.Offset || ct.Fields[11].GoName != "L" {
		t.Errorf("field l bound to %s at %d", ct.Fields[11].GoName, ct.Fields[11].GoOffset)
	}
}

func TestCompiler_Choice(t *testing.T) {
	c := NewCompiler()

	ct, err := c.Compile(typeB, reflect.TypeOf(TypeB{}))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if len(ct.Cases) != 3 {
		t.Fatalf("Cases len = %d, want 3", len(ct.Cases))
	}
	for i, cs := range ct.Cases {
		if cs.Tag != byte(0x80+i) {
			t.Errorf("case %s tag = %#x", cs.Name, cs.Tag)
		}
	}
	if ct.Cases[2].Type != nil {
		t.Error("empty variant should have no payload type")
	}
	if ct.Cases[1].GoType != reflect.TypeOf(TypeA{}) {
		t.Errorf("case b Go type = %v", ct.Cases[1].GoType)
	}
}

func TestCompiler_SequenceOf(t *testing.T) {
	c := NewCompiler()

	ct, err := c.Compile(typeF, reflect.TypeOf(TypeF{}))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if ct.Max != 2 || ct.ElemType.Max != 1 {
		t.Errorf("Max = %d, elem Max = %d", ct.Max, ct.ElemType.Max)
	}
}

func TestCompiler_FieldMatching(t *testing.T) {
	typ := schema.Sequence(
		schema.Member("seq-num", schema.U16()),
		schema.Member("ID", schema.U8()),
		schema.Member("payload", schema.Bool()),
	)
	type msg struct {
		SeqNum  uint16
		Id      uint8
		Ignored bool `oer:"-"`
		Body    bool `oer:"payload"`
	}

	ct, err := NewCompiler().Compile(typ, reflect.TypeOf(msg{}))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	want := []string{"SeqNum", "Id", "Body"}
	for i, f := range ct.Fields {
		if f.GoName != want[i] {
			t.Errorf("member %s bound to %s, want %s", f.Name, f.GoName, want[i])
		}
	}
}

func TestCompiler_TagBeatsNameMatch(t *testing.T) {
	typ := schema.Sequence(
		schema.Member("a", schema.U8()),
		schema.Member("A", schema.U8()),
	)
	type msg struct {
		A  uint8 `oer:"A"`
		A2 uint8 `oer:"a"`
	}

	ct, err := NewCompiler().Compile(typ, reflect.TypeOf(msg{}))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if ct.Fields[0].GoName != "A2" || ct.Fields[1].GoName != "A" {
		t.Errorf("bound to %s, %s; want A2, A", ct.Fields[0].GoName, ct.Fields[1].GoName)
	}

	got, err := Marshal(typ, msg{A: 1, A2: 2})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := []byte{0x02, 0x01}; !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestCompiler_TaggedFieldNotMatchedByName(t *testing.T) {
	typ := schema.Sequence(schema.Member("count", schema.U8()))
	type msg struct {
		Count uint8 `oer:"total"`
	}

	_, err := NewCompiler().Compile(typ, reflect.TypeOf(msg{}))
	e := asError(t, err)
	if e.Kind != errors.KindFieldMissing {
		t.Fatalf("Kind = %s, want %s", e.Kind, errors.KindFieldMissing)
	}
	if e.GoType != reflect.TypeOf(msg{}).String() {
		t.Errorf("GoType = %q", e.GoType)
	}
	if e.SchemaType != typ.String() {
		t.Errorf("SchemaType = %q, want %q", e.SchemaType, typ.String())
	}
}

func TestCompiler_Cache(t *testing.T) {
	c := NewCompiler()
	goType := reflect.TypeOf(TypeC{})

	ct1, err := c.Compile(typeC, goType)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	ct2, err := c.Compile(typeC, reflect.PointerTo(goType))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if ct1 != ct2 {
		t.Error("pointer and value Go types should share one compiled type")
	}

	// an equal but distinct descriptor is a separate entry
	other := schema.SequenceOf(typeB, 2)
	ct3, err := c.Compile(other, goType)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if ct3 == ct1 {
		t.Error("distinct descriptors should not share a cache entry")
	}
}

func TestCompiler_NilGoType(t *testing.T) {
	if _, err := NewCompiler().Compile(schema.U8(), nil); err == nil {
		t.Error("expected error for nil Go type")
	}
}

func TestToKebabCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Name", "name"},
		{"SeqNum", "seq-num"},
		{"already", "already"},
		{"ABC", "a-b-c"},
	}
	for _, tc := range tests {
		if got := toKebabCase(tc.in); got != tc.want {
			t.Errorf("toKebabCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCodec_ConcurrentUse(t *testing.T) {
	c := NewCompiler()
	enc := NewEncoderWithCompiler(c)
	dec := NewDecoderWithCompiler(c)
	a := sampleA()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, typeC.MaxSize())
			for i := 0; i < 50; i++ {
				in := TypeC{{B: &a}, {C: &struct{}{}}}
				n, err := enc.Encode(buf, typeC, in)
				if err != nil {
					errs <- err
					return
				}
				var out TypeC
				if _, err := dec.Decode(&out, typeC, buf[:n]); err != nil {
					errs <- err
					return
				}
				if len(out) != 2 || out[0].B == nil || *out[0].B != a {
					t.Errorf("unexpected decode result")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
