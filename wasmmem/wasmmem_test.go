package wasmmem

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/wippyai/oer/codec"
	"github.com/wippyai/oer/errors"
	"github.com/wippyai/oer/schema"
)

// memoryModule is a module with one exported page of memory named "memory".
var memoryModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
}

var readingType = schema.Sequence(
	schema.Member("sensor", schema.U16()),
	schema.Member("value", schema.S32()),
	schema.Member("flags", schema.SequenceOf(schema.Bool(), 3)),
)

type Reading struct {
	Flags  []bool
	Value  int32
	Sensor uint16
}

func instantiate(t *testing.T) api.Module {
	t.Helper()
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	t.Cleanup(func() { r.Close(ctx) })

	mod, err := r.Instantiate(ctx, memoryModule)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	return mod
}

func TestCodec_RoundTrip(t *testing.T) {
	mod := instantiate(t)
	mc, err := New(mod, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	in := Reading{Sensor: 7, Value: -2, Flags: []bool{true, false}}
	n, err := mc.Encode(16, 32, readingType, &in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want, err := codec.Marshal(readingType, &in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if n != len(want) {
		t.Fatalf("n = %d, want %d", n, len(want))
	}
	got, _ := mod.Memory().Read(16, uint32(n))
	if !bytes.Equal(got, want) {
		t.Errorf("guest bytes = % x, want % x", got, want)
	}

	var out Reading
	if _, err := mc.Decode(&out, 16, uint32(n), readingType); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCodec_Value(t *testing.T) {
	mc, err := New(instantiate(t), &Config{MemoryName: "memory"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	v := map[string]any{"sensor": 1, "value": 100, "flags": []any{true}}
	n, err := mc.EncodeValue(0, 64, readingType, v)
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	if n != 2+4+2+1 {
		t.Fatalf("n = %d", n)
	}

	got, m, err := mc.DecodeValue(0, uint32(n), readingType)
	if err != nil || m != n {
		t.Fatalf("DecodeValue: %d, %v", m, err)
	}
	want := map[string]any{"sensor": uint16(1), "value": int32(100), "flags": []any{true}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCodec_RegionTooSmall(t *testing.T) {
	mod := instantiate(t)
	mc, _ := New(mod, nil)
	mod.Memory().Write(100, []byte{0xee, 0xee, 0xee, 0xee})

	in := Reading{Sensor: 1, Value: 1}
	n, err := mc.Encode(100, 3, readingType, &in)
	if n != -errors.CodeBufferTooSmall {
		t.Fatalf("n = %d, want %d (%v)", n, -errors.CodeBufferTooSmall, err)
	}
	if got, _ := mod.Memory().Read(103, 1); got[0] != 0xee {
		t.Error("encode wrote past the region")
	}
}

func TestCodec_OutOfBounds(t *testing.T) {
	mc, _ := New(instantiate(t), nil)

	tests := []struct {
		name string
		call func() (int, error)
	}{
		{"encode", func() (int, error) { return mc.Encode(65530, 16, readingType, &Reading{}) }},
		{"encode value", func() (int, error) { return mc.EncodeValue(65536, 1, readingType, nil) }},
		{"decode", func() (int, error) { return mc.Decode(&Reading{}, 0, 65537, readingType) }},
		{"decode value", func() (int, error) {
			_, n, err := mc.DecodeValue(70000, 1, readingType)
			return n, err
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, err := tc.call()
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("expected *errors.Error, got %v", err)
			}
			if e.Kind != errors.KindOutOfBounds || e.Phase != errors.PhaseGuest {
				t.Errorf("got %s/%s", e.Phase, e.Kind)
			}
			if n != -errors.CodeInvalid {
				t.Errorf("n = %d, want %d", n, -errors.CodeInvalid)
			}
		})
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Error("nil module accepted")
	}

	_, err := New(instantiate(t), &Config{MemoryName: "heap"})
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindNotFound {
		t.Errorf("missing export: %v", err)
	}
}

func TestNew_CustomCodecs(t *testing.T) {
	compiler := codec.NewCompiler()
	cfg := &Config{
		Encoder: codec.NewEncoderWithCompiler(compiler),
		Decoder: codec.NewDecoderWithCompiler(compiler),
	}
	mc, err := New(instantiate(t), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if mc.enc != cfg.Encoder || mc.dec != cfg.Decoder {
		t.Error("configured codecs not used")
	}
	if mc.Memory() == nil {
		t.Error("Memory() = nil")
	}
}
