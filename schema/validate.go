package schema

import (
	"strconv"

	"github.com/wippyai/oer/errors"
)

// Validate checks the structural invariants the codec relies on: known
// kinds, non-negative octet sizes, unique non-empty member names, 1 to
// MaxVariants choice variants and a sequence-of bound within 0..MaxCount.
func (t *Type) Validate() error {
	return validate(t, nil)
}

func validate(t *Type, path []string) error {
	if t == nil {
		return errors.NilPointer(errors.PhaseValidate, path, "*schema.Type")
	}

	switch t.Kind {
	case KindBool, KindU8, KindS8, KindU16, KindS16, KindU32, KindS32,
		KindU64, KindS64, KindF32, KindF64:
		return nil

	case KindOctets:
		if t.Size < 0 {
			return errors.New(errors.PhaseValidate, errors.KindInvalidData).
				Path(path...).
				Detail("negative octet string size %d", t.Size).
				Build()
		}
		return nil

	case KindSequence:
		return validateFields(t, path, false)

	case KindChoice:
		if len(t.Fields) == 0 {
			return errors.New(errors.PhaseValidate, errors.KindInvalidData).
				Path(path...).
				Detail("choice has no variants").
				Build()
		}
		if len(t.Fields) > MaxVariants {
			return errors.New(errors.PhaseValidate, errors.KindOverflow).
				Path(path...).
				Detail("choice has %d variants, maximum is %d", len(t.Fields), MaxVariants).
				Build()
		}
		return validateFields(t, path, true)

	case KindSequenceOf:
		if t.Max < 0 || t.Max > MaxCount {
			return errors.New(errors.PhaseValidate, errors.KindOverflow).
				Path(path...).
				Detail("sequence-of maximum %d outside 0..%d", t.Max, MaxCount).
				Build()
		}
		return validate(t.Elem, append(append([]string{}, path...), "[elem]"))

	default:
		return errors.Unsupported(errors.PhaseValidate, "descriptor kind "+strconv.Itoa(int(t.Kind)))
	}
}

func validateFields(t *Type, path []string, emptyOK bool) error {
	seen := make(map[string]struct{}, len(t.Fields))
	for _, f := range t.Fields {
		if f.Name == "" {
			return errors.New(errors.PhaseValidate, errors.KindInvalidData).
				Path(path...).
				Detail("%s member without a name", t.Kind).
				Build()
		}
		if _, dup := seen[f.Name]; dup {
			return errors.New(errors.PhaseValidate, errors.KindInvalidData).
				Path(path...).
				Detail("duplicate %s member %q", t.Kind, f.Name).
				Build()
		}
		seen[f.Name] = struct{}{}

		if f.Type == nil && emptyOK {
			continue
		}
		fieldPath := append(append([]string{}, path...), f.Name)
		if err := validate(f.Type, fieldPath); err != nil {
			return err
		}
	}
	return nil
}
