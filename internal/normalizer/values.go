// Package normalizer turns raw provider payloads into canonical entities.
// Every function is total: missing or malformed input yields a default,
// never an error or a panic.
package normalizer

import (
	"github.com/spf13/cast"
	"math"
	"mindmate/internal/models"
	"strings"
)

// Number accepts a native number or a numeric-looking string. Booleans,
// blanks, NaN and infinities are not numbers.
func Number(v any) *float64 {
	switch t := v.(type) {
	case nil, bool, *models.RawPayload, []any:
		return nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		v = s
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Count is a non-negative whole number; fractions are truncated.
func Count(v any) (int, bool) {
	f := Number(v)
	if f == nil || *f < 0 || *f > math.MaxInt32 {
		return 0, false
	}
	return int(math.Trunc(*f)), true
}

// Text returns strings trimmed and numbers formatted; anything else is "".
func Text(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64, int, int64:
		return cast.ToString(t)
	default:
		return ""
	}
}

func textPtr(v any) *string {
	s := Text(v)
	if s == "" {
		return nil
	}
	return &s
}

// first returns the first present, non-null field among keys.
func first(raw *models.RawPayload, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := raw.Get(k); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// firstText returns the first non-blank text among keys.
func firstText(raw *models.RawPayload, keys ...string) string {
	for _, k := range keys {
		v, _ := raw.Get(k)
		if s := Text(v); s != "" {
			return s
		}
	}
	return ""
}

func clampIntensity(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := math.Max(models.MinIntensity, math.Min(models.MaxIntensity, *f))
	return &c
}

// textList reads a list of names. Pairs contribute their first element,
// objects their name; blanks are dropped. Never nil.
func textList(v any, objectKeys ...string) []string {
	out := make([]string, 0)
	list, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range list {
		var s string
		switch t := item.(type) {
		case []any:
			if len(t) > 0 {
				s = Text(t[0])
			}
		case *models.RawPayload:
			s = firstText(t, objectKeys...)
		default:
			s = Text(t)
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
