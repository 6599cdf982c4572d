package cases

import (
	"fmt"
	"strconv"

	"github.com/arloliu/casestack/errs"
)

// Normalize converts a loosely typed case value list into an ordered list of
// string values.
//
// A bare scalar becomes a one-element list. Strings are opaque: "day" yields
// ["day"], never ["d", "a", "y"]. Accepted inputs:
//   - string, bool, signed and unsigned integers, float32, float64
//   - []string
//   - []any whose elements are scalars
//
// nil, nested sequences and other types return ErrInvalidCaseValue.
func Normalize(v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil", errs.ErrInvalidCaseValue)
	case []string:
		out := make([]string, len(x))
		copy(out, x)

		return out, nil
	case []any:
		out := make([]string, 0, len(x))
		for i, el := range x {
			s, ok := scalarString(el)
			if !ok {
				return nil, fmt.Errorf("%w: element %d has type %T", errs.ErrInvalidCaseValue, i, el)
			}
			out = append(out, s)
		}

		return out, nil
	default:
		s, ok := scalarString(v)
		if !ok {
			return nil, fmt.Errorf("%w: type %T", errs.ErrInvalidCaseValue, v)
		}

		return []string{s}, nil
	}
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	default:
		return "", false
	}
}
