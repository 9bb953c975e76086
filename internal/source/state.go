package source

import (
	"strconv"
	"strings"

	"github.com/baxromumarov/job-capture/internal/normalize"
	"github.com/baxromumarov/job-capture/internal/page"
)

// Path walks decoded JSON by object keys and array indexes. Any step that
// does not fit the payload's shape yields false.
func Path(root any, keys ...string) (any, bool) {
	cur := root
	for _, key := range keys {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[key]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// State reads a value below a named page global.
func State(p *page.Snapshot, global string, keys ...string) (any, bool) {
	root, ok := p.Global(global)
	if !ok {
		return nil, false
	}
	return Path(root, keys...)
}

func StateString(p *page.Snapshot, global string, keys ...string) (string, bool) {
	v, ok := State(p, global, keys...)
	if !ok {
		return "", false
	}
	return String(v)
}

func StateNumber(p *page.Snapshot, global string, keys ...string) (float64, bool) {
	v, ok := State(p, global, keys...)
	if !ok {
		return 0, false
	}
	return Number(v)
}

func StateBool(p *page.Snapshot, global string, keys ...string) (bool, bool) {
	v, ok := State(p, global, keys...)
	if !ok {
		return false, false
	}
	return Bool(v)
}

// String accepts strings and JSON-LD style {"@value": "..."} wrappers.
func String(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := normalize.CleanText(t)
		return s, s != ""
	case map[string]any:
		if val, ok := t["@value"]; ok {
			return String(val)
		}
	}
	return "", false
}

// Number accepts JSON numbers and numeric strings such as "120,000".
func Number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		clean := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func Bool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, false
		}
		return b, true
	}
	return false, false
}

// FirstElement unwraps a homogeneous array to its first element and passes
// singletons through.
func FirstElement(v any) (any, bool) {
	if arr, ok := v.([]any); ok {
		if len(arr) == 0 {
			return nil, false
		}
		v = arr[0]
	}
	return v, v != nil
}
