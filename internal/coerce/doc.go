// Package coerce converts loosely typed numbers from dynamic values into
// the fixed-width integers and reals the codec writes.
//
// Any Go integer or float type is accepted, as is json.Number, so values
// built by hand and values produced by encoding/json both encode. A
// conversion fails when the value is fractional or does not fit.
//
// This package is internal to the module.
package coerce
