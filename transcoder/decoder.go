package transcoder

import (
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/redis-codec/errors"
	"github.com/wippyai/redis-codec/resp"
	"github.com/wippyai/redis-codec/transcoder/internal/plan"
)

// Decoder populates Go values from RESP reply values
type Decoder struct {
	compiler *Compiler
}

// NewDecoder creates a decoder backed by the given compiler. A nil
// compiler uses the package default.
func NewDecoder(c *Compiler) *Decoder {
	if c == nil {
		c = defaultCompiler
	}
	return &Decoder{compiler: c}
}

// Decode populates dest, which must be a non-nil pointer, from src.
// Named records accept both native maps and even-length flat pair
// arrays; positional records require an array of exact length.
func (d *Decoder) Decode(src resp.Value, dest any) error {
	if dest == nil {
		return errors.NilPointer(errors.PhaseDecode, nil, "nil")
	}
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr {
		return errors.New(errors.PhaseDecode, errors.KindUnsupported).
			GoType(rv.Type().String()).
			Detail("destination must be a pointer").
			Build()
	}
	if rv.IsNil() {
		return errors.NilPointer(errors.PhaseDecode, nil, rv.Type().String())
	}
	ct, err := d.compiler.Compile(rv.Type().Elem())
	if err != nil {
		return err
	}
	return decodeValue(ct, src, rv.Elem(), nil)
}

func decodeValue(ct *plan.CompiledType, src resp.Value, dest reflect.Value, path []string) error {
	switch ct.Shape {
	case plan.ShapePointer:
		if src.IsNull() {
			dest.SetZero()
			return nil
		}
		if dest.IsNil() {
			dest.Set(reflect.New(ct.GoType.Elem()))
		}
		return decodeValue(ct.Elem, src, dest.Elem(), path)
	case plan.ShapeLeaf:
		return decodeLeaf(ct, src, dest, path)
	case plan.ShapeBlob:
		return decodeBlob(ct, src, dest, path)
	case plan.ShapeStruct:
		return decodeStruct(ct, src, dest, path)
	case plan.ShapeTuple:
		return decodeTuple(ct, src, dest, path)
	case plan.ShapeEmpty:
		// zero-field records accept any reply
		return nil
	case plan.ShapeEnum:
		return decodeEnum(ct, src, dest, path)
	default:
		return errors.New(errors.PhaseDecode, errors.KindUnsupported).
			Path(path...).
			GoType(ct.GoType.String()).
			Detail("invalid shape").
			Build()
	}
}

func decodeStruct(ct *plan.CompiledType, src resp.Value, dest reflect.Value, path []string) error {
	s := getScratch()
	defer putScratch(s)

	if err := foldPairs(ct, src, s, path); err != nil {
		return err
	}

	for i := range ct.Fields {
		f := &ct.Fields[i]
		fpath := childPath(path, f.WireName)

		fsrc, found := s.direct[f.WireName]
		if f.Type.Unwrap().Shape == plan.ShapeStruct {
			// dotted pairs regroup into a nested map for record fields
			if group, ok := s.groups[f.WireName]; ok {
				fsrc = resp.Map(group...)
				found = true
			}
		}
		if !found {
			if !f.Type.Absorbs() {
				return errors.FieldMissing(path, f.WireName)
			}
			fsrc = resp.Null()
		}
		if err := decodeValue(f.Type, fsrc, dest.FieldByIndex(f.Index), fpath); err != nil {
			return errors.FieldFailure(path, f.WireName, err)
		}
	}
	return nil
}

// foldPairs indexes the reply's pairs by wire name with last-write-wins
// semantics. Dotted names regroup under their first segment with the
// remainder as the nested key. Unknown names are ignored.
func foldPairs(ct *plan.CompiledType, src resp.Value, s *scratch, path []string) error {
	switch src.Kind() {
	case resp.KindMap:
		for _, p := range src.Pairs() {
			if err := foldPair(p.Key, p.Value, s, ct, path); err != nil {
				return err
			}
		}
		return nil
	case resp.KindArray:
		items := src.Items()
		if len(items)%2 != 0 {
			return errors.New(errors.PhaseDecode, errors.KindShapeMismatch).
				Path(path...).
				GoType(ct.GoType.String()).
				WireKind(resp.KindArray.String()).
				Detail("flat pair sequence has odd length %d", len(items)).
				Build()
		}
		for i := 0; i < len(items); i += 2 {
			if err := foldPair(items[i], items[i+1], s, ct, path); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.ShapeMismatch(path, ct.GoType.String(), src.Kind().String())
	}
}

func foldPair(key, value resp.Value, s *scratch, ct *plan.CompiledType, path []string) error {
	kb, ok := key.Text()
	if !ok {
		return errors.New(errors.PhaseDecode, errors.KindShapeMismatch).
			Path(path...).
			GoType(ct.GoType.String()).
			WireKind(key.Kind().String()).
			Detail("field names must be strings").
			Build()
	}
	name := string(kb)
	if head, rest, dotted := strings.Cut(name, "."); dotted {
		s.groups[head] = append(s.groups[head], resp.Pair{Key: resp.BulkText(rest), Value: value})
		return nil
	}
	s.direct[name] = value
	return nil
}

func decodeTuple(ct *plan.CompiledType, src resp.Value, dest reflect.Value, path []string) error {
	if src.Kind() != resp.KindArray {
		return errors.ShapeMismatch(path, ct.GoType.String(), src.Kind().String())
	}
	items := src.Items()
	if len(items) != len(ct.Fields) {
		return errors.ArityMismatch(path, len(ct.Fields), len(items))
	}
	for i := range ct.Fields {
		f := &ct.Fields[i]
		var fv reflect.Value
		var fpath []string
		if f.Index != nil {
			fv = dest.FieldByIndex(f.Index)
			fpath = childPath(path, f.Name)
		} else {
			fv = dest.Index(i)
			fpath = childPath(path, strconv.Itoa(i))
		}
		if err := decodeValue(f.Type, items[i], fv, fpath); err != nil {
			return err
		}
	}
	return nil
}

// decodeEnum matches a string-bearing reply against the variant tokens.
// Integer replies are rejected; ordinals are not wire values.
func decodeEnum(ct *plan.CompiledType, src resp.Value, dest reflect.Value, path []string) error {
	text, ok := src.Text()
	if !ok {
		return errors.TypeMismatch(errors.PhaseDecode, path, ct.GoType.String(), src.Kind().String())
	}
	if !utf8.Valid(text) {
		return errors.InvalidUTF8(errors.PhaseDecode, path, text)
	}
	i, ok := ct.TokenIndex[string(text)]
	if !ok {
		return errors.UnknownVariant(path, string(text), ct.WireTokens())
	}
	setOrdinal(dest, i)
	return nil
}

func decodeBlob(ct *plan.CompiledType, src resp.Value, dest reflect.Value, path []string) error {
	if src.IsNull() {
		dest.SetZero()
		return nil
	}
	text, ok := src.Text()
	if !ok {
		return errors.TypeMismatch(errors.PhaseDecode, path, ct.GoType.String(), src.Kind().String())
	}
	if err := ct.Codec.Unmarshal(text, dest.Addr().Interface()); err != nil {
		return errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(path...).
			GoType(ct.GoType.String()).
			Cause(err).
			Detail("%s unmarshal failed", ct.Codec.Name()).
			Build()
	}
	return nil
}

var defaultDecoder = &Decoder{compiler: defaultCompiler}

// Decode populates dest from src using the default compiler
func Decode(src resp.Value, dest any) error {
	return defaultDecoder.Decode(src, dest)
}

// Unmarshal converts a raw client reply through resp.FromReply and
// decodes it into dest
func Unmarshal(reply any, dest any) error {
	src, err := resp.FromReply(reply)
	if err != nil {
		return err
	}
	return defaultDecoder.Decode(src, dest)
}
