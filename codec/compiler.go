package codec

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/wippyai/oer/errors"
	"github.com/wippyai/oer/schema"
	"go.uber.org/zap"
)

// Compiler binds schema descriptors to Go types. Results are cached per
// (descriptor, Go type) pair; a Compiler is safe for concurrent use.
type Compiler struct {
	cache sync.Map // cacheKey -> *CompiledType
}

type cacheKey struct {
	goType reflect.Type
	schema *schema.Type
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

var defaultCompiler = NewCompiler()

// Compile validates t and binds it to goType. A pointer goType is
// dereferenced once.
func (c *Compiler) Compile(t *schema.Type, goType reflect.Type) (*CompiledType, error) {
	if goType == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Detail("Go type cannot be nil").
			Build()
	}
	if goType.Kind() == reflect.Ptr {
		goType = goType.Elem()
	}

	key := cacheKey{schema: t, goType: goType}
	if cached, ok := c.cache.Load(key); ok {
		return cached.(*CompiledType), nil
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	ct, err := c.compile(t, goType, nil)
	if err != nil {
		return nil, err
	}

	Logger().Debug("compiled type",
		zap.Stringer("schema", t),
		zap.Stringer("go_type", goType))

	actual, _ := c.cache.LoadOrStore(key, ct)
	return actual.(*CompiledType), nil
}

func (c *Compiler) compile(t *schema.Type, goType reflect.Type, path []string) (*CompiledType, error) {
	switch t.Kind {
	case schema.KindOctets:
		return c.compileOctets(t, goType, path)
	case schema.KindSequence:
		return c.compileSequence(t, goType, path)
	case schema.KindChoice:
		return c.compileChoice(t, goType, path)
	case schema.KindSequenceOf:
		return c.compileSequenceOf(t, goType, path)
	default:
		return c.compilePrimitive(t, goType, path)
	}
}

var primitiveKinds = map[schema.Kind]reflect.Kind{
	schema.KindBool: reflect.Bool,
	schema.KindU8:   reflect.Uint8,
	schema.KindS8:   reflect.Int8,
	schema.KindU16:  reflect.Uint16,
	schema.KindS16:  reflect.Int16,
	schema.KindU32:  reflect.Uint32,
	schema.KindS32:  reflect.Int32,
	schema.KindU64:  reflect.Uint64,
	schema.KindS64:  reflect.Int64,
	schema.KindF32:  reflect.Float32,
	schema.KindF64:  reflect.Float64,
}

func (c *Compiler) compilePrimitive(t *schema.Type, goType reflect.Type, path []string) (*CompiledType, error) {
	want, ok := primitiveKinds[t.Kind]
	if !ok {
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			Detail("unsupported schema kind: %s", t.Kind).
			Build()
	}
	if goType.Kind() != want {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), want.String())
	}

	return &CompiledType{
		GoType: goType,
		GoSize: goType.Size(),
		Schema: t,
		Kind:   t.Kind,
	}, nil
}

func (c *Compiler) compileOctets(t *schema.Type, goType reflect.Type, path []string) (*CompiledType, error) {
	if goType.Kind() != reflect.Array || goType.Elem().Kind() != reflect.Uint8 || goType.Len() != t.Size {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), t.String())
	}

	return &CompiledType{
		GoType: goType,
		GoSize: goType.Size(),
		Schema: t,
		Size:   t.Size,
		Kind:   schema.KindOctets,
	}, nil
}

func (c *Compiler) compileSequence(t *schema.Type, goType reflect.Type, path []string) (*CompiledType, error) {
	if goType.Kind() != reflect.Struct {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), "struct")
	}

	fields := make([]CompiledField, 0, len(t.Fields))
	for _, member := range t.Fields {
		goField, found := findGoField(goType, member.Name)
		if !found {
			return nil, missingField(t, goType, path, member.Name)
		}

		fieldPath := append(append([]string{}, path...), member.Name)
		fieldType, err := c.compile(member.Type, goField.Type, fieldPath)
		if err != nil {
			return nil, err
		}

		fields = append(fields, CompiledField{
			Name:     member.Name,
			GoName:   goField.Name,
			GoOffset: goField.Offset,
			Type:     fieldType,
		})
	}

	return &CompiledType{
		GoType: goType,
		GoSize: goType.Size(),
		Schema: t,
		Fields: fields,
		Kind:   schema.KindSequence,
	}, nil
}

// compileChoice binds a choice to a struct holding one pointer field per
// variant. Exactly one of them is non-nil in a valid value.
func (c *Compiler) compileChoice(t *schema.Type, goType reflect.Type, path []string) (*CompiledType, error) {
	if goType.Kind() != reflect.Struct {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), "struct of variant pointers")
	}

	cases := make([]CompiledCase, 0, len(t.Fields))
	for i, variant := range t.Fields {
		goField, found := findGoField(goType, variant.Name)
		if !found {
			return nil, missingField(t, goType, path, variant.Name)
		}
		casePath := append(append([]string{}, path...), variant.Name)
		if goField.Type.Kind() != reflect.Ptr {
			return nil, errors.TypeMismatch(errors.PhaseCompile, casePath, goField.Type.String(), "pointer")
		}

		cc := CompiledCase{
			Name:     variant.Name,
			GoOffset: goField.Offset,
			GoType:   goField.Type.Elem(),
			Tag:      schema.Tag(i),
		}
		if variant.Type != nil {
			caseType, err := c.compile(variant.Type, cc.GoType, casePath)
			if err != nil {
				return nil, err
			}
			cc.Type = caseType
		}
		cases = append(cases, cc)
	}

	return &CompiledType{
		GoType: goType,
		GoSize: goType.Size(),
		Schema: t,
		Cases:  cases,
		Kind:   schema.KindChoice,
	}, nil
}

func (c *Compiler) compileSequenceOf(t *schema.Type, goType reflect.Type, path []string) (*CompiledType, error) {
	if goType.Kind() != reflect.Slice {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), "slice")
	}

	elemPath := append(append([]string{}, path...), "[elem]")
	elemType, err := c.compile(t.Elem, goType.Elem(), elemPath)
	if err != nil {
		return nil, err
	}

	return &CompiledType{
		GoType:   goType,
		GoSize:   goType.Size(),
		Schema:   t,
		ElemType: elemType,
		Max:      t.Max,
		Kind:     schema.KindSequenceOf,
	}, nil
}

func missingField(t *schema.Type, goType reflect.Type, path []string, name string) *errors.Error {
	return errors.New(errors.PhaseCompile, errors.KindFieldMissing).
		Path(path...).
		GoType(goType.String()).
		SchemaType(t.String()).
		Detail("required field %q not found", name).
		Build()
}

// findGoField matches an exact oer:"name" tag on any field first. Untagged
// fields then match case-insensitively or by kebab-case name.
func findGoField(goType reflect.Type, name string) (reflect.StructField, bool) {
	for i := 0; i < goType.NumField(); i++ {
		field := goType.Field(i)
		if field.IsExported() && field.Tag.Get("oer") == name {
			return field, true
		}
	}

	for i := 0; i < goType.NumField(); i++ {
		field := goType.Field(i)
		if !field.IsExported() || field.Tag.Get("oer") != "" {
			continue
		}
		if strings.EqualFold(field.Name, name) || toKebabCase(field.Name) == name {
			return field, true
		}
	}
	return reflect.StructField{}, false
}

func toKebabCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteByte('-')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
