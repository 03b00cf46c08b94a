package transcoder

import (
	"encoding"
	"reflect"
	"strconv"

	"github.com/wippyai/redis-codec/errors"
	"github.com/wippyai/redis-codec/resp"
	"github.com/wippyai/redis-codec/transcoder/internal/plan"
)

// appendLeaf renders v as a single wire argument appended to dst
func appendLeaf(dst []byte, ct *plan.CompiledType, v reflect.Value, path []string) ([]byte, error) {
	switch ct.Leaf {
	case plan.LeafBool:
		return strconv.AppendBool(dst, v.Bool()), nil
	case plan.LeafInt:
		return strconv.AppendInt(dst, v.Int(), 10), nil
	case plan.LeafUint:
		return strconv.AppendUint(dst, v.Uint(), 10), nil
	case plan.LeafFloat:
		return strconv.AppendFloat(dst, v.Float(), 'f', -1, ct.GoType.Bits()), nil
	case plan.LeafString:
		return append(dst, v.String()...), nil
	case plan.LeafBytes:
		return append(dst, v.Bytes()...), nil
	case plan.LeafText:
		text, err := marshalText(ct, v)
		if err != nil {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).
				GoType(ct.GoType.String()).
				Cause(err).
				Detail("MarshalText failed").
				Build()
		}
		return append(dst, text...), nil
	case plan.LeafBinary:
		data, err := marshalBinary(ct, v)
		if err != nil {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).
				GoType(ct.GoType.String()).
				Cause(err).
				Detail("MarshalBinary failed").
				Build()
		}
		return append(dst, data...), nil
	default:
		return nil, errors.New(errors.PhaseEncode, errors.KindUnsupported).
			Path(path...).
			GoType(ct.GoType.String()).
			Detail("not a leaf type").
			Build()
	}
}

// decodeLeaf assigns one wire value to a leaf destination. Integer
// replies convert by value; string-bearing replies parse.
func decodeLeaf(ct *plan.CompiledType, src resp.Value, dest reflect.Value, path []string) error {
	if src.Kind() == resp.KindInteger {
		return leafFromInteger(ct, src.Integer(), dest, path)
	}
	text, ok := src.Text()
	if !ok {
		return errors.TypeMismatch(errors.PhaseDecode, path, ct.GoType.String(), src.Kind().String())
	}
	return leafFromText(ct, text, dest, path)
}

func leafFromInteger(ct *plan.CompiledType, n int64, dest reflect.Value, path []string) error {
	switch ct.Leaf {
	case plan.LeafBool:
		switch n {
		case 0:
			dest.SetBool(false)
		case 1:
			dest.SetBool(true)
		default:
			return errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
				Path(path...).
				GoType(ct.GoType.String()).
				WireKind(resp.KindInteger.String()).
				Value(n).
				Detail("integer %d is not a boolean", n).
				Build()
		}
	case plan.LeafInt:
		if dest.OverflowInt(n) {
			return errors.Overflow(errors.PhaseDecode, path, n, ct.GoType.String())
		}
		dest.SetInt(n)
	case plan.LeafUint:
		if n < 0 || dest.OverflowUint(uint64(n)) {
			return errors.Overflow(errors.PhaseDecode, path, n, ct.GoType.String())
		}
		dest.SetUint(uint64(n))
	case plan.LeafFloat:
		dest.SetFloat(float64(n))
	case plan.LeafString:
		dest.SetString(strconv.FormatInt(n, 10))
	case plan.LeafBytes:
		dest.SetBytes(strconv.AppendInt(nil, n, 10))
	default:
		return errors.TypeMismatch(errors.PhaseDecode, path, ct.GoType.String(), resp.KindInteger.String())
	}
	return nil
}

func leafFromText(ct *plan.CompiledType, text []byte, dest reflect.Value, path []string) error {
	switch ct.Leaf {
	case plan.LeafBool:
		b, err := strconv.ParseBool(string(text))
		if err != nil {
			return parseFailure(ct, text, path, err)
		}
		dest.SetBool(b)
	case plan.LeafInt:
		n, err := strconv.ParseInt(string(text), 10, ct.GoType.Bits())
		if err != nil {
			return parseFailure(ct, text, path, err)
		}
		dest.SetInt(n)
	case plan.LeafUint:
		n, err := strconv.ParseUint(string(text), 10, ct.GoType.Bits())
		if err != nil {
			return parseFailure(ct, text, path, err)
		}
		dest.SetUint(n)
	case plan.LeafFloat:
		f, err := strconv.ParseFloat(string(text), ct.GoType.Bits())
		if err != nil {
			return parseFailure(ct, text, path, err)
		}
		dest.SetFloat(f)
	case plan.LeafString:
		dest.SetString(string(text))
	case plan.LeafBytes:
		buf := make([]byte, len(text))
		copy(buf, text)
		dest.SetBytes(buf)
	case plan.LeafText:
		u := dest.Addr().Interface().(encoding.TextUnmarshaler)
		if err := u.UnmarshalText(text); err != nil {
			return errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path(path...).
				GoType(ct.GoType.String()).
				Value(string(text)).
				Cause(err).
				Detail("UnmarshalText failed").
				Build()
		}
	case plan.LeafBinary:
		u := dest.Addr().Interface().(encoding.BinaryUnmarshaler)
		if err := u.UnmarshalBinary(text); err != nil {
			return errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path(path...).
				GoType(ct.GoType.String()).
				Cause(err).
				Detail("UnmarshalBinary failed").
				Build()
		}
	}
	return nil
}

// parseFailure distinguishes range overflow from malformed input
func parseFailure(ct *plan.CompiledType, text []byte, path []string, err error) error {
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return errors.Overflow(errors.PhaseDecode, path, string(text), ct.GoType.String())
	}
	return errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
		Path(path...).
		GoType(ct.GoType.String()).
		Value(string(text)).
		Cause(err).
		Detail("cannot parse %q", text).
		Build()
}

func marshalText(ct *plan.CompiledType, v reflect.Value) ([]byte, error) {
	if ct.TextPtr {
		return addressableOf(ct, v).Interface().(encoding.TextMarshaler).MarshalText()
	}
	return v.Interface().(encoding.TextMarshaler).MarshalText()
}

func marshalBinary(ct *plan.CompiledType, v reflect.Value) ([]byte, error) {
	if ct.BinaryPtr {
		return addressableOf(ct, v).Interface().(encoding.BinaryMarshaler).MarshalBinary()
	}
	return v.Interface().(encoding.BinaryMarshaler).MarshalBinary()
}

// addressableOf returns a pointer value for v, copying when v itself is
// not addressable
func addressableOf(ct *plan.CompiledType, v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v.Addr()
	}
	p := reflect.New(ct.GoType)
	p.Elem().Set(v)
	return p
}

// enumOrdinal validates and returns the ordinal of v within ct's
// variant list, regardless of the underlying integer kind
func enumOrdinal(ct *plan.CompiledType, v reflect.Value, phase errors.Phase, path []string) (int, error) {
	limit := uint64(len(ct.Variants))
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		if n < 0 || uint64(n) >= limit {
			return 0, errors.InvalidOrdinal(phase, path, n, len(ct.Variants)-1)
		}
		return int(n), nil
	default:
		n := v.Uint()
		if n >= limit {
			return 0, errors.InvalidOrdinal(phase, path, int64(n), len(ct.Variants)-1)
		}
		return int(n), nil
	}
}

func setOrdinal(dest reflect.Value, ordinal int) {
	switch dest.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dest.SetInt(int64(ordinal))
	default:
		dest.SetUint(uint64(ordinal))
	}
}
