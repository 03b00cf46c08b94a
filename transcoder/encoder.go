package transcoder

import (
	"reflect"
	"strconv"

	rediscodec "github.com/wippyai/redis-codec"
	"github.com/wippyai/redis-codec/errors"
	"github.com/wippyai/redis-codec/transcoder/internal/plan"
)

// Encoder renders Go values as flat Redis command arguments
type Encoder struct {
	compiler *Compiler
}

// NewEncoder creates an encoder backed by the given compiler. A nil
// compiler uses the package default.
func NewEncoder(c *Compiler) *Encoder {
	if c == nil {
		c = defaultCompiler
	}
	return &Encoder{compiler: c}
}

// Encode renders v as wire arguments written to w in order. Named
// records produce field-name/value pairs, positional records one
// argument per element, enums their wire token.
func (e *Encoder) Encode(v any, w rediscodec.ArgWriter) error {
	if v == nil {
		return errors.New(errors.PhaseEncode, errors.KindNilPointer).
			Detail("cannot encode nil").
			Build()
	}
	rv := reflect.ValueOf(v)
	ct, err := e.compiler.Compile(rv.Type())
	if err != nil {
		return err
	}
	return encodeValue(ct, rv, nil, w)
}

func encodeValue(ct *plan.CompiledType, v reflect.Value, path []string, w rediscodec.ArgWriter) error {
	v, ct, present := unwrapPointers(v, ct)
	if !present {
		return errors.NilPointer(errors.PhaseEncode, path, ct.GoType.String())
	}
	switch ct.Shape {
	case plan.ShapeStruct:
		return encodeStruct(ct, v, "", path, w)
	case plan.ShapeTuple:
		return encodeTuple(ct, v, path, w)
	default:
		arg, err := singleArg(ct, v, path)
		if err != nil {
			return err
		}
		w.WriteArg(arg)
		return nil
	}
}

// encodeStruct emits name/value pairs for each present field. Nested
// named records flatten with a dotted prefix; nil optional fields
// contribute no pair.
func encodeStruct(ct *plan.CompiledType, v reflect.Value, prefix string, path []string, w rediscodec.ArgWriter) error {
	for i := range ct.Fields {
		f := &ct.Fields[i]
		fv, ft, present := unwrapPointers(v.FieldByIndex(f.Index), f.Type)
		if !present {
			continue
		}
		fpath := childPath(path, f.WireName)

		if ft.Shape == plan.ShapeStruct {
			if err := encodeStruct(ft, fv, prefix+f.WireName+".", fpath, w); err != nil {
				return err
			}
			continue
		}
		if ft.Shape == plan.ShapeEmpty {
			// encodes to zero pairs, so the name is omitted too
			continue
		}

		arg, err := singleArg(ft, fv, fpath)
		if err != nil {
			return err
		}
		w.WriteArg([]byte(prefix + f.WireName))
		w.WriteArg(arg)
	}
	return nil
}

func encodeTuple(ct *plan.CompiledType, v reflect.Value, path []string, w rediscodec.ArgWriter) error {
	for i := range ct.Fields {
		f := &ct.Fields[i]
		var fv reflect.Value
		var fpath []string
		if f.Index != nil {
			fv = v.FieldByIndex(f.Index)
			fpath = childPath(path, f.Name)
		} else {
			fv = v.Index(i)
			fpath = childPath(path, strconv.Itoa(i))
		}
		arg, err := singleArg(f.Type, fv, fpath)
		if err != nil {
			return err
		}
		w.WriteArg(arg)
	}
	return nil
}

// singleArg renders a single-argument shape to one wire argument
func singleArg(ct *plan.CompiledType, v reflect.Value, path []string) ([]byte, error) {
	switch ct.Shape {
	case plan.ShapeLeaf:
		return appendLeaf(nil, ct, v, path)
	case plan.ShapeBlob:
		data, err := ct.Codec.Marshal(v.Interface())
		if err != nil {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).
				GoType(ct.GoType.String()).
				Cause(err).
				Detail("%s marshal failed", ct.Codec.Name()).
				Build()
		}
		return data, nil
	case plan.ShapeEmpty:
		return []byte{}, nil
	case plan.ShapeEnum:
		i, err := enumOrdinal(ct, v, errors.PhaseEncode, path)
		if err != nil {
			return nil, err
		}
		return []byte(ct.Variants[i].Token), nil
	default:
		return nil, errors.New(errors.PhaseEncode, errors.KindUnsupported).
			Path(path...).
			GoType(ct.GoType.String()).
			Detail("shape %s does not render to a single argument", ct.Shape).
			Build()
	}
}

// unwrapPointers strips pointer shapes, reporting absence when any
// level is nil
func unwrapPointers(v reflect.Value, ct *plan.CompiledType) (reflect.Value, *plan.CompiledType, bool) {
	for ct.Shape == plan.ShapePointer {
		if v.IsNil() {
			return v, ct, false
		}
		v = v.Elem()
		ct = ct.Elem
	}
	return v, ct, true
}

var defaultEncoder = &Encoder{compiler: defaultCompiler}

// Encode renders v as wire arguments using the default compiler
func Encode(v any, w rediscodec.ArgWriter) error {
	return defaultEncoder.Encode(v, w)
}

// Marshal renders v as a flat argument list using the default compiler
func Marshal(v any) (rediscodec.ArgSlice, error) {
	var args rediscodec.ArgSlice
	if err := defaultEncoder.Encode(v, &args); err != nil {
		return nil, err
	}
	return args, nil
}
