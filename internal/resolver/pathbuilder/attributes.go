package pathbuilder

import (
	"math"
	"strings"

	"github.com/petrarca/component-resolver/internal/resolver/naming"
	"github.com/petrarca/component-resolver/internal/types"
)

// Length caps applied to every attribute snapshot
const (
	MaxKeyLength    = 50
	MaxStringLength = 200
	MaxProps        = 20
	MaxShallowItems = 10
	MaxClassTokens  = 5
	MaxDataAttrs    = 10
	MaxDataValue    = 100
	MaxTextLength   = 100
)

// SanitizeProps returns a shallow, JSON-safe copy of rendered props.
// Keys listed in unsafe (child content, markup injection targets, refs) are dropped,
// as are functions, element or node references and anything nested deeper than one level.
// It returns nil when nothing survives.
func SanitizeProps(props map[string]any, unsafe []string) map[string]any {
	if len(props) == 0 {
		return nil
	}

	skip := make(map[string]bool, len(unsafe))
	for _, k := range unsafe {
		skip[k] = true
	}

	out := make(map[string]any)
	for _, key := range sortedKeys(props) {
		if len(out) >= MaxProps {
			break
		}
		if dropKey(key, skip) {
			continue
		}
		if v, ok := shallowValue(props[key], skip); ok {
			out[key] = v
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// dropKey reports whether a prop key is unsafe, internal or oversized. It applies to
// top-level keys and to the keys of nested maps alike.
func dropKey(key string, skip map[string]bool) bool {
	return skip[key] || key == "" || len(key) > MaxKeyLength || strings.HasPrefix(key, "__")
}

// shallowValue keeps scalars and one level of scalar lists or maps
func shallowValue(v any, skip map[string]bool) (any, bool) {
	if s, ok := scalar(v); ok {
		return s, true
	}

	switch value := v.(type) {
	case []string:
		items := make([]any, 0, min(len(value), MaxShallowItems))
		for _, item := range value {
			if len(items) == MaxShallowItems {
				break
			}
			items = append(items, naming.Truncate(item, MaxStringLength))
		}
		return items, true
	case []any:
		items := make([]any, 0, min(len(value), MaxShallowItems))
		for _, item := range value {
			if len(items) == MaxShallowItems {
				break
			}
			if s, ok := scalar(item); ok {
				items = append(items, s)
			}
		}
		return items, true
	case map[string]any:
		nested := make(map[string]any)
		for _, key := range sortedKeys(value) {
			if len(nested) == MaxShallowItems {
				break
			}
			if dropKey(key, skip) {
				continue
			}
			if s, ok := scalar(value[key]); ok {
				nested[key] = s
			}
		}
		return nested, true
	case map[string]string:
		nested := make(map[string]any)
		for _, key := range sortedKeys(value) {
			if len(nested) == MaxShallowItems {
				break
			}
			if !dropKey(key, skip) {
				nested[key] = naming.Truncate(value[key], MaxStringLength)
			}
		}
		return nested, true
	}
	return nil, false
}

func scalar(v any) (any, bool) {
	switch value := v.(type) {
	case nil:
		return nil, true
	case string:
		return naming.Truncate(value, MaxStringLength), true
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return value, true
	case float32:
		if math.IsNaN(float64(value)) || math.IsInf(float64(value), 0) {
			return nil, false
		}
		return value, true
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, false
		}
		return value, true
	}
	return nil, false
}

// ElementAttributes snapshots raw element characteristics: tag, id, up to five class
// tokens, ARIA role, a bounded set of data-* attributes and short text content.
func ElementAttributes(el types.Element) map[string]any {
	attrs := map[string]any{
		"tag": Tag(el),
	}

	if id := el.ID(); id != "" {
		attrs["id"] = naming.Truncate(id, MaxDataValue)
	}

	if classes := el.Classes(); len(classes) > 0 {
		limited := make([]string, 0, MaxClassTokens)
		for _, c := range classes {
			if len(limited) == MaxClassTokens {
				break
			}
			limited = append(limited, naming.Truncate(c, MaxKeyLength))
		}
		attrs["classes"] = limited
	}

	if role, ok := el.Attr("role"); ok && role != "" {
		attrs["role"] = naming.Truncate(role, MaxKeyLength)
	}

	data := make(map[string]string)
	for _, a := range el.Attributes() {
		if len(data) == MaxDataAttrs {
			break
		}
		if !strings.HasPrefix(a.Key, "data-") || len(a.Key) > MaxKeyLength {
			continue
		}
		data[a.Key] = naming.Truncate(a.Value, MaxDataValue)
	}
	if len(data) > 0 {
		attrs["data"] = data
	}

	if text := el.Text(); text != "" {
		attrs["text"] = naming.Truncate(text, MaxTextLength)
	}

	return attrs
}
