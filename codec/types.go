package codec

import (
	"unsafe"

	"github.com/wippyai/oer/codec/internal/types"
)

type CompiledType = types.CompiledType
type CompiledField = types.Field
type CompiledCase = types.Case

var unitSentinel struct{}

// UnitPtr is the value set on a decoded choice variant that has no payload
// and is bound to a zero-size Go type.
func UnitPtr() unsafe.Pointer {
	return unsafe.Pointer(&unitSentinel)
}
