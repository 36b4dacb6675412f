package yampi

import (
	"strconv"
	"strings"
)

// ServiceRecord is one raw carrier service entry as returned by the
// shipping-costs endpoint. Field names vary by carrier and account
// configuration, so records are kept untyped and read through the
// extractors below.
type ServiceRecord = map[string]any

// NumberField returns the first of the named fields holding a numeric
// value. Numeric strings count: some accounts return ids and day counts
// as strings.
func NumberField(rec map[string]any, names ...string) (float64, bool) {
	for _, name := range names {
		val, ok := rec[name]
		if !ok || val == nil {
			continue
		}
		if n, ok := asNumber(val); ok {
			return n, true
		}
	}
	return 0, false
}

// StringField returns the first of the named fields holding a non-empty
// string after trimming.
func StringField(rec map[string]any, names ...string) (string, bool) {
	for _, name := range names {
		val, ok := rec[name]
		if !ok {
			continue
		}
		if s, ok := val.(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}

// ScalarField returns the first of the named fields holding a non-empty
// string or a number, preserving the original type. Service codes come
// back as either.
func ScalarField(rec map[string]any, names ...string) (any, bool) {
	for _, name := range names {
		val, ok := rec[name]
		if !ok || val == nil {
			continue
		}
		switch v := val.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return v, true
			}
		case float64:
			return v, true
		}
	}
	return nil, false
}

func asNumber(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
