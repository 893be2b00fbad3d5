package schema

import "math"

// Bounds holds the smallest and largest encoded size of a descriptor.
type Bounds struct {
	Min int
	Max int
}

// Fixed reports whether every value encodes to the same number of bytes.
func (b Bounds) Fixed() bool {
	return b.Min == b.Max
}

// Bounds computes encoded size limits. The descriptor must be valid.
func (t *Type) Bounds() Bounds {
	if t == nil {
		return Bounds{}
	}

	switch t.Kind {
	case KindOctets:
		return Bounds{Min: t.Size, Max: t.Size}

	case KindSequence:
		var b Bounds
		for _, f := range t.Fields {
			fb := f.Type.Bounds()
			b.Min = satAdd(b.Min, fb.Min)
			b.Max = satAdd(b.Max, fb.Max)
		}
		return b

	case KindChoice:
		b := Bounds{Min: -1}
		for _, f := range t.Fields {
			fb := f.Type.Bounds()
			if b.Min < 0 || fb.Min < b.Min {
				b.Min = fb.Min
			}
			if fb.Max > b.Max {
				b.Max = fb.Max
			}
		}
		if b.Min < 0 {
			b.Min = 0
		}
		b.Min = satAdd(b.Min, 1)
		b.Max = satAdd(b.Max, 1)
		return b

	case KindSequenceOf:
		eb := t.Elem.Bounds()
		return Bounds{Min: 2, Max: satAdd(2, satMul(t.Max, eb.Max))}

	default:
		w := t.Kind.Width()
		return Bounds{Min: w, Max: w}
	}
}

// MaxSize is the size of a destination that fits every value of t.
// It saturates at math.MaxInt for descriptors whose worst case does not
// fit in an int.
func (t *Type) MaxSize() int {
	return t.Bounds().Max
}

// Sizes are non-negative; both helpers clamp at math.MaxInt.

func satAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func satMul(a, b int) int {
	if a != 0 && b > math.MaxInt/a {
		return math.MaxInt
	}
	return a * b
}
