package resp

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/wippyai/redis-codec/errors"
)

// FromReply converts a generic client reply into a Value.
//
// Client libraries hand back untyped replies: bulk strings as string,
// integers as int64, arrays as []any, RESP3 maps as map[any]any, and
// HGETALL results as map[string]string. FromReply normalizes all of
// them. String-keyed maps are ordered by key so conversion is
// deterministic; protocol maps keep their wire order.
func FromReply(reply any) (Value, error) {
	switch r := reply.(type) {
	case nil:
		return Null(), nil
	case Value:
		return r, nil
	case string:
		return BulkText(r), nil
	case []byte:
		return BulkString(r), nil
	case int64:
		return Integer(r), nil
	case int:
		return Integer(int64(r)), nil
	case bool:
		if r {
			return Integer(1), nil
		}
		return Integer(0), nil
	case float64:
		return BulkText(strconv.FormatFloat(r, 'f', -1, 64)), nil
	case []any:
		items := make([]Value, len(r))
		for i, e := range r {
			v, err := FromReply(e)
			if err != nil {
				return Null(), err
			}
			items[i] = v
		}
		return Array(items...), nil
	case []string:
		items := make([]Value, len(r))
		for i, s := range r {
			items[i] = BulkText(s)
		}
		return Array(items...), nil
	case map[string]string:
		keys := make([]string, 0, len(r))
		for k := range r {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]Pair, len(keys))
		for i, k := range keys {
			pairs[i] = Pair{Key: BulkText(k), Value: BulkText(r[k])}
		}
		return Map(pairs...), nil
	case map[any]any:
		pairs := make([]Pair, 0, len(r))
		for k, val := range r {
			kv, err := FromReply(k)
			if err != nil {
				return Null(), err
			}
			vv, err := FromReply(val)
			if err != nil {
				return Null(), err
			}
			pairs = append(pairs, Pair{Key: kv, Value: vv})
		}
		return Map(pairs...), nil
	case error:
		return Null(), r
	default:
		return Null(), errors.New(errors.PhaseDecode, errors.KindUnsupported).
			GoType(fmt.Sprintf("%T", reply)).
			Detail("cannot convert client reply to a wire value").
			Build()
	}
}
