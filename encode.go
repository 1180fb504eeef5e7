package toon

import (
	"sort"
	"strconv"
	"strings"
)

type encoder struct {
	opts EncodeOptions
	w    *lineWriter
}

func newEncoder(opts EncodeOptions) *encoder {
	return &encoder{
		opts: opts,
		w:    newLineWriter(opts.Indent),
	}
}

// encode renders a canonical value tree as a TOON document.
func (e *encoder) encode(v interface{}) (string, error) {
	switch val := v.(type) {
	case map[string]interface{}:
		if err := e.encodeObject(val, 0); err != nil {
			return "", err
		}
	case []interface{}:
		if err := e.encodeArray("", val, 0, ""); err != nil {
			return "", err
		}
	default:
		s, err := e.formatValue(v)
		if err != nil {
			return "", err
		}
		return s, nil
	}
	return e.w.render(), nil
}

// formatValue renders a primitive as its inline text form.
func (e *encoder) formatValue(v interface{}) (string, error) {
	switch val := v.(type) {
	case nil, bool, int64, float64:
		return formatScalar(val), nil
	case string:
		return e.encodeString(val), nil
	default:
		return "", newEncodeError(ErrCodeUnsupportedType, "unsupported value kind %T", v)
	}
}

func (e *encoder) encodeString(s string) string {
	if needsQuoting(s, e.opts.Delimiter) {
		return quoteString(s)
	}
	return s
}

// encodeObject emits one line per entry, in alphabetical key order.
func (e *encoder) encodeObject(obj map[string]interface{}, depth int) error {
	for _, key := range sortedKeys(obj) {
		ek := encodeKey(key)

		switch v := obj[key].(type) {
		case map[string]interface{}:
			e.w.push(ek+":", depth)
			if err := e.encodeObject(v, depth+1); err != nil {
				return err
			}
		case []interface{}:
			if err := e.encodeArray(ek, v, depth, ""); err != nil {
				return err
			}
		default:
			s, err := e.formatValue(v)
			if err != nil {
				return err
			}
			e.w.push(ek+": "+s, depth)
		}
	}
	return nil
}

// arrayHead builds the "key[N]" bracket segment shared by all three array
// forms. A configured length marker prefixes the count; a non-comma
// delimiter is recorded after it so the decoder knows how to split.
func (e *encoder) arrayHead(key string, n int) string {
	var b strings.Builder
	b.WriteString(key)
	b.WriteByte('[')
	b.WriteString(e.opts.LengthMarker)
	b.WriteString(strconv.Itoa(n))
	if e.opts.Delimiter != "," {
		b.WriteString(e.opts.Delimiter)
	}
	b.WriteByte(']')
	return b.String()
}

// encodeArray classifies arr and emits it in the first matching form:
// empty, inline (all primitive), tabular (uniform primitive-valued
// objects), or list. The header line is prefixed with prefix, which is
// "- " when the array is the first field of a list item.
func (e *encoder) encodeArray(key string, arr []interface{}, depth int, prefix string) error {
	head := prefix + e.arrayHead(key, len(arr))
	childDepth := depth + 1
	if prefix != "" {
		// First field of a list item: children sit below the item's
		// sibling fields, one level deeper than usual.
		childDepth = depth + 2
	}

	switch {
	case len(arr) == 0:
		e.w.push(head+":", depth)

	case allPrimitive(arr):
		cells, err := e.joinCells(arr)
		if err != nil {
			return err
		}
		e.w.push(head+": "+cells, depth)

	case isTabular(arr):
		fields := sortedKeys(arr[0].(map[string]interface{}))
		e.w.push(head+"{"+strings.Join(fields, e.opts.Delimiter)+"}:", depth)
		for _, item := range arr {
			obj := item.(map[string]interface{})
			row := make([]interface{}, len(fields))
			for i, f := range fields {
				row[i] = obj[f]
			}
			cells, err := e.joinCells(row)
			if err != nil {
				return err
			}
			e.w.push(cells, childDepth)
		}

	default:
		e.w.push(head+":", depth)
		for _, item := range arr {
			if err := e.encodeListItem(item, childDepth); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) joinCells(values []interface{}) (string, error) {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteString(e.opts.Delimiter)
		}
		s, err := e.formatValue(v)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// encodeListItem emits one "- "-marked block. Object items place their
// first field on the marker line and the remaining fields one level deeper,
// aligned under the first field's key.
func (e *encoder) encodeListItem(item interface{}, depth int) error {
	switch v := item.(type) {
	case map[string]interface{}:
		if len(v) == 0 {
			e.w.push("-", depth)
			return nil
		}

		keys := sortedKeys(v)
		if err := e.encodeItemField(keys[0], v[keys[0]], depth, "- "); err != nil {
			return err
		}
		for _, key := range keys[1:] {
			if err := e.encodeItemField(key, v[key], depth+1, ""); err != nil {
				return err
			}
		}
		return nil

	case []interface{}:
		return e.encodeArray("", v, depth, "- ")

	default:
		s, err := e.formatValue(v)
		if err != nil {
			return err
		}
		e.w.push("- "+s, depth)
		return nil
	}
}

// encodeItemField emits one field of a list-item object. A "- " prefix
// marks the first field, which shares the marker line; nested values then
// indent relative to the item's field level, not the marker.
func (e *encoder) encodeItemField(key string, value interface{}, depth int, prefix string) error {
	ek := encodeKey(key)
	childDepth := depth + 1
	if prefix != "" {
		childDepth = depth + 2
	}

	switch v := value.(type) {
	case map[string]interface{}:
		e.w.push(prefix+ek+":", depth)
		return e.encodeObject(v, childDepth)
	case []interface{}:
		return e.encodeArray(ek, v, depth, prefix)
	default:
		s, err := e.formatValue(v)
		if err != nil {
			return err
		}
		e.w.push(prefix+ek+": "+s, depth)
		return nil
	}
}

func allPrimitive(arr []interface{}) bool {
	for _, v := range arr {
		if !isPrimitive(v) {
			return false
		}
	}
	return true
}

// isTabular reports whether arr is a uniform array of objects: every
// element an object, every object the same key set, every value primitive.
// Empty objects have no row cells, so they take the list form instead.
func isTabular(arr []interface{}) bool {
	first, ok := arr[0].(map[string]interface{})
	if !ok || len(first) == 0 {
		return false
	}
	for _, v := range first {
		if !isPrimitive(v) {
			return false
		}
	}

	for _, item := range arr[1:] {
		obj, ok := item.(map[string]interface{})
		if !ok || len(obj) != len(first) {
			return false
		}
		for k, v := range obj {
			if !isPrimitive(v) {
				return false
			}
			if _, ok := first[k]; !ok {
				return false
			}
		}
	}
	return true
}

func sortedKeys(obj map[string]interface{}) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
