package schema

import (
	"strconv"
	"strings"

	"github.com/wippyai/oer/errors"
	"go.bytecodealliance.org/wit"
)

// WITOptions bounds the lists of an imported WIT type. WIT lists are
// unbounded, OER sequence-of is not, so every list needs a maximum.
type WITOptions struct {
	// ListMax overrides the bound per list, keyed by dotted path
	// ("items", "body.entries.[elem].tags").
	ListMax map[string]int
	// DefaultListMax applies to lists without an override.
	DefaultListMax int
}

// FromWIT converts a WIT type into a descriptor:
//
//	record   -> Sequence
//	tuple    -> Sequence with members "0", "1", ...
//	variant  -> Choice (cases without payload become empty variants)
//	enum     -> Choice of empty variants
//	list<T>  -> SequenceOf(T, bound)
//	bool, u8..s64, f32, f64 -> scalars
//
// Strings, chars, options, results, flags and handles have no counterpart
// in the supported OER subset and are rejected.
func FromWIT(t wit.Type, opts *WITOptions) (*Type, error) {
	if opts == nil {
		opts = &WITOptions{}
	}
	st, err := fromWIT(t, opts, nil)
	if err != nil {
		return nil, err
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	return st, nil
}

func fromWIT(t wit.Type, opts *WITOptions, path []string) (*Type, error) {
	switch typ := t.(type) {
	case wit.Bool:
		return Bool(), nil
	case wit.U8:
		return U8(), nil
	case wit.S8:
		return S8(), nil
	case wit.U16:
		return U16(), nil
	case wit.S16:
		return S16(), nil
	case wit.U32:
		return U32(), nil
	case wit.S32:
		return S32(), nil
	case wit.U64:
		return U64(), nil
	case wit.S64:
		return S64(), nil
	case wit.F32:
		return Float32(), nil
	case wit.F64:
		return Float64(), nil
	case *wit.TypeDef:
		return fromTypeDef(typ, opts, path)
	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			Detail("WIT type %T has no OER mapping", t).
			Build()
	}
}

func fromTypeDef(td *wit.TypeDef, opts *WITOptions, path []string) (*Type, error) {
	switch kind := td.Kind.(type) {
	case *wit.Record:
		members := make([]Field, 0, len(kind.Fields))
		for _, f := range kind.Fields {
			ft, err := fromWIT(f.Type, opts, childPath(path, f.Name))
			if err != nil {
				return nil, err
			}
			members = append(members, Member(f.Name, ft))
		}
		return Sequence(members...), nil

	case *wit.Tuple:
		members := make([]Field, 0, len(kind.Types))
		for i, et := range kind.Types {
			name := strconv.Itoa(i)
			ft, err := fromWIT(et, opts, childPath(path, name))
			if err != nil {
				return nil, err
			}
			members = append(members, Member(name, ft))
		}
		return Sequence(members...), nil

	case *wit.Variant:
		variants := make([]Field, 0, len(kind.Cases))
		for _, c := range kind.Cases {
			var ct *Type
			if c.Type != nil {
				var err error
				ct, err = fromWIT(c.Type, opts, childPath(path, c.Name))
				if err != nil {
					return nil, err
				}
			}
			variants = append(variants, Variant(c.Name, ct))
		}
		return Choice(variants...), nil

	case *wit.Enum:
		variants := make([]Field, 0, len(kind.Cases))
		for _, c := range kind.Cases {
			variants = append(variants, Variant(c.Name, nil))
		}
		return Choice(variants...), nil

	case *wit.List:
		key := strings.Join(path, ".")
		bound, ok := opts.ListMax[key]
		if !ok {
			bound = opts.DefaultListMax
		}
		if bound <= 0 {
			return nil, errors.New(errors.PhaseCompile, errors.KindInvalidInput).
				Path(path...).
				Detail("list %q has no maximum length", key).
				Build()
		}
		elem, err := fromWIT(kind.Type, opts, childPath(path, "[elem]"))
		if err != nil {
			return nil, err
		}
		return SequenceOf(elem, bound), nil

	case wit.Type:
		return fromWIT(kind, opts, path)

	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			Detail("WIT type definition %T has no OER mapping", kind).
			Build()
	}
}

func childPath(path []string, name string) []string {
	return append(append([]string{}, path...), name)
}
