package wasmmem

import (
	"reflect"

	"github.com/tetratelabs/wazero/api"
	"github.com/wippyai/oer/codec"
	"github.com/wippyai/oer/errors"
	"github.com/wippyai/oer/schema"
	"go.uber.org/zap"
)

// DefaultMemoryName is the export name of the canonical guest memory.
const DefaultMemoryName = "memory"

// Config selects the guest memory and the codec instances to use.
type Config struct {
	Encoder    *codec.Encoder
	Decoder    *codec.Decoder
	MemoryName string
}

// Codec encodes and decodes OER values in place in guest memory.
type Codec struct {
	mem api.Memory
	enc *codec.Encoder
	dec *codec.Decoder
}

// New binds a Codec to the exported memory of mod. A nil cfg uses the
// default memory name and the package-level codec instances.
func New(mod api.Module, cfg *Config) (*Codec, error) {
	if mod == nil {
		return nil, errors.NilPointer(errors.PhaseGuest, nil, "api.Module")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	name := cfg.MemoryName
	if name == "" {
		name = DefaultMemoryName
	}

	mem := mod.ExportedMemory(name)
	if mem == nil || reflect.ValueOf(mem).IsNil() {
		return nil, errors.NotFound(errors.PhaseGuest, "memory export", name)
	}

	c := NewFromMemory(mem)
	if cfg.Encoder != nil {
		c.enc = cfg.Encoder
	}
	if cfg.Decoder != nil {
		c.dec = cfg.Decoder
	}
	return c, nil
}

// NewFromMemory binds a Codec to an already resolved memory.
func NewFromMemory(mem api.Memory) *Codec {
	return &Codec{
		mem: mem,
		enc: codec.NewEncoder(),
		dec: codec.NewDecoder(),
	}
}

// region returns a view of [offset, offset+size) in guest memory.
func (c *Codec) region(offset, size uint32) ([]byte, error) {
	buf, ok := c.mem.Read(offset, size)
	if !ok {
		err := errors.OutOfBounds(errors.PhaseGuest, offset, size, c.mem.Size())
		Logger().Debug("guest region out of bounds",
			zap.Uint32("offset", offset),
			zap.Uint32("size", size),
			zap.Uint32("memory_size", c.mem.Size()),
		)
		return nil, err
	}
	return buf, nil
}

// Encode writes v into the guest region using the compiled binding of its
// Go type. Bytes past the returned count are left untouched.
func (c *Codec) Encode(offset, size uint32, t *schema.Type, v any) (int, error) {
	buf, err := c.region(offset, size)
	if err != nil {
		return -errors.CodeOf(err), err
	}
	return c.enc.Encode(buf, t, v)
}

// EncodeValue writes a dynamic value into the guest region.
func (c *Codec) EncodeValue(offset, size uint32, t *schema.Type, v any) (int, error) {
	buf, err := c.region(offset, size)
	if err != nil {
		return -errors.CodeOf(err), err
	}
	return codec.EncodeValue(buf, t, v)
}

// Decode reads the guest region into dst. Octet arrays are copied out, so
// dst does not alias guest memory after the call.
func (c *Codec) Decode(dst any, offset, size uint32, t *schema.Type) (int, error) {
	buf, err := c.region(offset, size)
	if err != nil {
		return -errors.CodeOf(err), err
	}
	return c.dec.Decode(dst, t, buf)
}

// DecodeValue reads the guest region into the dynamic form of t.
func (c *Codec) DecodeValue(offset, size uint32, t *schema.Type) (any, int, error) {
	buf, err := c.region(offset, size)
	if err != nil {
		return nil, -errors.CodeOf(err), err
	}
	return codec.DecodeValue(t, buf)
}

// Memory returns the bound guest memory.
func (c *Codec) Memory() api.Memory {
	return c.mem
}
