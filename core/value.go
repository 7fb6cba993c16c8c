package core

import (
	"fmt"
	"strconv"
	"strings"
)

// AsFloat coerces the numeric scalar forms a record column can hold.
// JSON decoding yields float64; callers binding parameters pass Go ints.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// FormatValue renders a scalar the way the emulated dialect compares and
// displays it. Whole floats print without a decimal part so a restored
// float64 id formats as "3", not "3.000000".
func FormatValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := AsFloat(v); ok {
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

// LooseEquals applies the delete/update coercion rule: equal if identical,
// or if one side is numeric and the other is its string representation
// (either direction), otherwise compared as strings.
func LooseEquals(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	af, aNum := AsFloat(a)
	bf, bNum := AsFloat(b)
	if aNum && bNum {
		return af == bf
	}
	if aNum {
		if s, ok := b.(string); ok {
			if sf, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return af == sf
			}
		}
	}
	if bNum {
		if s, ok := a.(string); ok {
			if sf, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return sf == bf
			}
		}
	}

	return FormatValue(a) == FormatValue(b)
}

// Compare orders two scalars for ORDER BY: numerically when both sides
// coerce to numbers (including numeric strings), lexicographically
// otherwise. Returns -1, 0 or 1.
func Compare(a, b any) int {
	af, aNum := asComparableFloat(a)
	bf, bNum := asComparableFloat(b)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(FormatValue(a), FormatValue(b))
}

func asComparableFloat(v any) (float64, bool) {
	if f, ok := AsFloat(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
