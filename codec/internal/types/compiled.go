package types

import (
	"reflect"

	"github.com/wippyai/oer/schema"
)

// CompiledType binds a schema descriptor to a Go type.
type CompiledType struct {
	GoType   reflect.Type
	Schema   *schema.Type
	ElemType *CompiledType
	Cases    []Case
	Fields   []Field
	GoSize   uintptr
	Size     int // octets length
	Max      int // sequence-of bound
	Kind     schema.Kind
}

// Field is a sequence member at a fixed offset inside its Go struct.
type Field struct {
	Type     *CompiledType
	Name     string
	GoName   string
	GoOffset uintptr
}

// Case is a choice variant held in a pointer field of the choice struct.
// Type is nil for variants without payload.
type Case struct {
	Type     *CompiledType
	GoType   reflect.Type // pointee of the variant field
	Name     string
	GoOffset uintptr
	Tag      byte
}
