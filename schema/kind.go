package schema

type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindS8
	KindU16
	KindS16
	KindU32
	KindS32
	KindU64
	KindS64
	KindF32
	KindF64
	KindOctets
	KindSequence
	KindChoice
	KindSequenceOf
)

var kindNames = [...]string{
	KindBool:       "bool",
	KindU8:         "u8",
	KindS8:         "s8",
	KindU16:        "u16",
	KindS16:        "s16",
	KindU32:        "u32",
	KindS32:        "s32",
	KindU64:        "u64",
	KindS64:        "s64",
	KindF32:        "f32",
	KindF64:        "f64",
	KindOctets:     "octets",
	KindSequence:   "sequence",
	KindChoice:     "choice",
	KindSequenceOf: "sequence-of",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsScalar reports whether the kind is a leaf handled by the primitive codec.
func (k Kind) IsScalar() bool {
	return k <= KindOctets
}

// Width returns the encoded size of fixed-width scalars, 0 otherwise.
// Octets have a per-descriptor width, see Type.Size.
func (k Kind) Width() int {
	switch k {
	case KindBool, KindU8, KindS8:
		return 1
	case KindU16, KindS16:
		return 2
	case KindU32, KindS32, KindF32:
		return 4
	case KindU64, KindS64, KindF64:
		return 8
	default:
		return 0
	}
}

// ParseKind maps a kind name as printed by String back to the Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}
