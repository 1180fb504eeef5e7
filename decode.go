package toon

import (
	"regexp"
	"strconv"
	"strings"
)

// line is one source line after scanning: trailing whitespace removed,
// indentation measured, 1-based line number recorded for errors.
type line struct {
	num    int
	indent int
	depth  int
	text   string
	raw    string
}

type decoder struct {
	opts   DecodeOptions
	strict bool
	cache  keyInterner
	lines  []line
	pos    int
}

func newDecoder(opts DecodeOptions) *decoder {
	return &decoder{opts: opts, strict: !opts.Lenient}
}

// headerRegex matches array header lines:
//
//	key[N]: a,b,c      inline
//	key[N]{f1,f2}:     tabular
//	key[N]:            list (or empty when N is 0)
//
// The key may be absent (root arrays) or quoted. An optional length marker
// precedes the count and an optional delimiter annotation follows it.
var headerRegex = regexp.MustCompile(`^("(?:[^"\\]|\\.)*"|[A-Za-z_][A-Za-z0-9_.]*)?\[([^0-9\]]*)([0-9]+)([,\t|])?\](?:\{([^}]*)\})?:(.*)$`)

type arrayHeader struct {
	key    string // raw key token, possibly quoted, empty for root arrays
	count  int
	delim  byte
	fields string // raw tabular field list, empty for inline/list
	inline string // trimmed content after the colon, empty for tabular/list
}

func parseHeader(text string) (arrayHeader, bool) {
	m := headerRegex.FindStringSubmatch(text)
	if m == nil {
		return arrayHeader{}, false
	}
	count, err := strconv.Atoi(m[3])
	if err != nil {
		return arrayHeader{}, false
	}
	h := arrayHeader{
		key:    m[1],
		count:  count,
		delim:  ',',
		fields: m[5],
		inline: strings.TrimSpace(m[6]),
	}
	if m[4] != "" {
		h.delim = m[4][0]
	}
	return h, true
}

func (d *decoder) decode(data string) (interface{}, error) {
	if err := d.scan(data); err != nil {
		return nil, err
	}
	if len(d.lines) == 0 {
		return map[string]interface{}{}, nil
	}

	first := d.lines[0]
	if first.depth != 0 {
		return nil, newDecodeError(ErrCodeUnexpectedLine, first, 1, "unexpected indent at start of document")
	}

	var (
		root interface{}
		err  error
	)
	switch {
	case isListItemText(first.text):
		// Headerless root list.
		root, err = d.decodeListItems(0, -1, first)
	default:
		if h, ok := parseHeader(first.text); ok && h.key == "" {
			root, err = d.decodeArrayBody(first, h, 1)
			break
		}
		if d.isRootScalar(first) {
			d.pos++
			return d.parseValueToken(first.text, first, first.indent+1)
		}
		root, err = d.decodeObject(0)
	}
	if err != nil {
		return nil, err
	}

	if d.pos < len(d.lines) {
		ln := d.lines[d.pos]
		return nil, newDecodeError(ErrCodeUnexpectedLine, ln, ln.indent+1, "unexpected content after document")
	}
	return root, nil
}

// scan splits the input into lines, trimming trailing whitespace and
// computing indentation depth. Blank lines are dropped; in strict mode a
// blank line between two content lines is an error, as is indentation that
// is not a whole multiple of the indent width.
func (d *decoder) scan(data string) error {
	raw := strings.Split(data, "\n")

	lastContent := -1
	for i := len(raw) - 1; i >= 0; i-- {
		if strings.TrimSpace(raw[i]) != "" {
			lastContent = i
			break
		}
	}

	seenContent := false
	for i, r := range raw {
		text := strings.TrimRight(r, " \t\r")
		ln := line{num: i + 1, raw: r}

		if text == "" {
			if d.strict && seenContent && i < lastContent {
				return newDecodeError(ErrCodeBlankLine, ln, 1, "blank line not allowed inside block")
			}
			continue
		}
		seenContent = true

		indent := 0
		for indent < len(text) && text[indent] == ' ' {
			indent++
		}
		if d.strict {
			if indent < len(text) && text[indent] == '\t' {
				return newDecodeError(ErrCodeIndentation, ln, indent+1, "tab in indentation")
			}
			if indent%d.opts.Indent != 0 {
				return newDecodeError(ErrCodeIndentation, ln, indent+1,
					"indentation of %d spaces is not a multiple of %d", indent, d.opts.Indent)
			}
		}

		ln.indent = indent
		ln.depth = indent / d.opts.Indent
		ln.text = text[indent:]
		d.lines = append(d.lines, ln)
	}
	return nil
}

// isRootScalar reports whether the document is a single primitive value:
// one line that is neither an array header nor a key-value pair.
func (d *decoder) isRootScalar(first line) bool {
	if len(d.lines) != 1 {
		return false
	}
	if first.text[0] == '"' {
		// A complete quoted token with nothing after it is a scalar even
		// when it contains a colon.
		if _, err := unquoteString(first.text); err == nil {
			return true
		}
		return false
	}
	return !strings.Contains(first.text, ":")
}

func isListItemText(text string) bool {
	return text == "-" || strings.HasPrefix(text, "- ")
}

// decodeObject reads key-value and array-header lines at the given depth
// into a fresh object, stopping at the first shallower line.
func (d *decoder) decodeObject(depth int) (map[string]interface{}, error) {
	result := make(map[string]interface{})
	if err := d.decodeObjectInto(result, depth); err != nil {
		return nil, err
	}
	return result, nil
}

func (d *decoder) decodeObjectInto(result map[string]interface{}, depth int) error {
	for d.pos < len(d.lines) {
		ln := d.lines[d.pos]
		if ln.depth < depth {
			return nil
		}
		if ln.depth > depth {
			if d.strict {
				return newDecodeError(ErrCodeUnexpectedLine, ln, ln.indent+1, "unexpected indent")
			}
			d.pos++
			continue
		}
		if isListItemText(ln.text) {
			return newDecodeError(ErrCodeUnexpectedLine, ln, ln.indent+1, "unexpected list item")
		}

		if h, ok := parseHeader(ln.text); ok {
			if h.key == "" {
				return newDecodeError(ErrCodeUnexpectedLine, ln, ln.indent+1, "missing key in array header")
			}
			key, err := d.decodeKey(h.key, ln)
			if err != nil {
				return err
			}
			if _, exists := result[key]; exists {
				return newDecodeError(ErrCodeDuplicateKey, ln, ln.indent+1, "duplicate key %q", key)
			}
			arr, err := d.decodeArrayBody(ln, h, depth+1)
			if err != nil {
				return err
			}
			result[key] = arr
			continue
		}

		key, value, valueCol, err := d.splitKeyValue(ln)
		if err != nil {
			return err
		}
		if _, exists := result[key]; exists {
			return newDecodeError(ErrCodeDuplicateKey, ln, ln.indent+1, "duplicate key %q", key)
		}

		if value == "" {
			d.pos++
			if d.pos < len(d.lines) && d.lines[d.pos].depth > depth {
				nested, err := d.decodeObject(depth + 1)
				if err != nil {
					return err
				}
				result[key] = nested
			} else {
				result[key] = map[string]interface{}{}
			}
			continue
		}

		v, err := d.parseValueToken(value, ln, valueCol)
		if err != nil {
			return err
		}
		result[key] = v
		d.pos++
	}
	return nil
}

// splitKeyValue parses a "key: value" line, returning the decoded key, the
// raw value text (may be empty) and the 1-based column where it starts.
func (d *decoder) splitKeyValue(ln line) (string, string, int, error) {
	text := ln.text

	if text[0] == '"' {
		end := quotedTokenEnd(text)
		if end < 0 {
			return "", "", 0, newDecodeError(ErrCodeUnterminatedString, ln, ln.indent+1, "unterminated string")
		}
		key, err := unquoteString(text[:end])
		if err != nil {
			return "", "", 0, d.locate(err, ln, ln.indent+1)
		}
		rest := text[end:]
		if !strings.HasPrefix(rest, ":") {
			return "", "", 0, newDecodeError(ErrCodeUnexpectedLine, ln, ln.indent+end+1, "expected ':' after key")
		}
		key, err = d.internKey(key, ln)
		if err != nil {
			return "", "", 0, err
		}
		value, valueCol := valueAfterColon(text, end, ln.indent)
		return key, value, valueCol, nil
	}

	idx := strings.IndexByte(text, ':')
	if idx <= 0 {
		return "", "", 0, newDecodeError(ErrCodeUnexpectedLine, ln, ln.indent+1, "cannot parse line: %s", text)
	}
	key := strings.TrimSpace(text[:idx])
	if key == "" || strings.ContainsAny(key, "\"") {
		return "", "", 0, newDecodeError(ErrCodeUnexpectedLine, ln, ln.indent+1, "invalid key %q", text[:idx])
	}
	key, err := d.internKey(key, ln)
	if err != nil {
		return "", "", 0, err
	}
	value, valueCol := valueAfterColon(text, idx, ln.indent)
	return key, value, valueCol, nil
}

// valueAfterColon returns the value text following the colon at colonIdx
// and the 1-based column where it starts.
func valueAfterColon(text string, colonIdx, indent int) (string, int) {
	start := colonIdx + 1
	for start < len(text) && text[start] == ' ' {
		start++
	}
	return strings.TrimSpace(text[start:]), indent + start + 1
}

// decodeKey unquotes a key token from an array header or tabular field
// list and applies the configured key mode.
func (d *decoder) decodeKey(token string, ln line) (string, error) {
	key := token
	if strings.HasPrefix(token, "\"") {
		unquoted, err := unquoteString(token)
		if err != nil {
			return "", d.locate(err, ln, ln.indent+1)
		}
		key = unquoted
	}
	return d.internKey(key, ln)
}

func (d *decoder) internKey(key string, ln line) (string, error) {
	switch d.opts.KeyMode {
	case KeyModeIntern:
		return d.cache.intern(key), nil
	case KeyModeInternExisting:
		if s, ok := d.opts.Symbols.lookup(key); ok {
			return s, nil
		}
		return "", newDecodeError(ErrCodeUnknownKey, ln, ln.indent+1, "unknown key %q", key)
	default:
		return key, nil
	}
}

// decodeArrayBody consumes the header line and the array's content.
// childDepth is the depth at which rows or list items are expected.
func (d *decoder) decodeArrayBody(headerLn line, h arrayHeader, childDepth int) (interface{}, error) {
	d.pos++

	switch {
	case h.fields != "":
		if h.inline != "" {
			return nil, newDecodeError(ErrCodeUnexpectedLine, headerLn, headerLn.indent+1,
				"unexpected content after tabular header")
		}
		return d.decodeTabularArray(headerLn, h, childDepth)
	case h.inline != "":
		return d.decodeInlineArray(headerLn, h)
	default:
		return d.decodeListItems(childDepth, h.count, headerLn)
	}
}

func (d *decoder) decodeInlineArray(headerLn line, h arrayHeader) (interface{}, error) {
	cells := splitDelimited(h.inline, h.delim)
	result := make([]interface{}, 0, len(cells))
	for _, cell := range cells {
		v, err := d.parseCellToken(strings.TrimSpace(cell), headerLn)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if d.strict && len(result) != h.count {
		return nil, newDecodeError(ErrCodeLengthMismatch, headerLn, headerLn.indent+1,
			"array length mismatch: declared %d, found %d", h.count, len(result))
	}
	return result, nil
}

func (d *decoder) decodeTabularArray(headerLn line, h arrayHeader, childDepth int) (interface{}, error) {
	rawFields := splitDelimited(h.fields, h.delim)
	fields := make([]string, len(rawFields))
	for i, f := range rawFields {
		key, err := d.decodeKey(strings.TrimSpace(f), headerLn)
		if err != nil {
			return nil, err
		}
		for _, prev := range fields[:i] {
			if prev == key {
				return nil, newDecodeError(ErrCodeDuplicateKey, headerLn, headerLn.indent+1,
					"duplicate field %q in tabular header", key)
			}
		}
		fields[i] = key
	}

	result := []interface{}{}
	for d.pos < len(d.lines) {
		ln := d.lines[d.pos]
		if ln.depth < childDepth {
			break
		}
		if ln.depth > childDepth {
			if d.strict {
				return nil, newDecodeError(ErrCodeUnexpectedLine, ln, ln.indent+1, "unexpected indent in tabular array")
			}
			d.pos++
			continue
		}
		if isListItemText(ln.text) {
			break
		}

		cells := splitDelimited(ln.text, h.delim)
		if d.strict && len(cells) != len(fields) {
			return nil, newDecodeError(ErrCodeLengthMismatch, ln, ln.indent+1,
				"row value count mismatch: expected %d, got %d", len(fields), len(cells))
		}

		obj := make(map[string]interface{}, len(fields))
		for i, field := range fields {
			if i >= len(cells) {
				break
			}
			v, err := d.parseCellToken(strings.TrimSpace(cells[i]), ln)
			if err != nil {
				return nil, err
			}
			obj[field] = v
		}
		result = append(result, obj)
		d.pos++
	}

	if d.strict && len(result) != h.count {
		return nil, newDecodeError(ErrCodeLengthMismatch, headerLn, headerLn.indent+1,
			"array length mismatch: declared %d, found %d", h.count, len(result))
	}
	return result, nil
}

// decodeListItems reads "- "-marked blocks at the given depth. A negative
// count disables the strict length check (headerless root lists).
func (d *decoder) decodeListItems(depth, count int, headerLn line) (interface{}, error) {
	result := []interface{}{}
	for d.pos < len(d.lines) {
		ln := d.lines[d.pos]
		if ln.depth < depth {
			break
		}
		if ln.depth > depth {
			if d.strict {
				return nil, newDecodeError(ErrCodeUnexpectedLine, ln, ln.indent+1, "unexpected indent in list array")
			}
			d.pos++
			continue
		}
		if !isListItemText(ln.text) {
			break
		}

		item, err := d.decodeListItem(ln)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if d.strict && count >= 0 && len(result) != count {
		return nil, newDecodeError(ErrCodeLengthMismatch, headerLn, headerLn.indent+1,
			"array length mismatch: declared %d, found %d", count, len(result))
	}
	return result, nil
}

// decodeListItem reads one list item. The marker alone is an empty object;
// content after the marker is an array header, the item's first field, or
// a primitive. Sibling fields of an object item sit one level deeper than
// the marker.
func (d *decoder) decodeListItem(ln line) (interface{}, error) {
	if ln.text == "-" {
		d.pos++
		return map[string]interface{}{}, nil
	}

	content := strings.TrimSpace(ln.text[2:])
	contentCol := ln.indent + 3
	fieldDepth := ln.depth + 1

	if h, ok := parseHeader(content); ok {
		arr, err := d.decodeArrayBody(ln, h, ln.depth+2)
		if err != nil {
			return nil, err
		}
		if h.key == "" {
			// Bare nested array item.
			return arr, nil
		}
		key, err := d.decodeKey(h.key, ln)
		if err != nil {
			return nil, err
		}
		obj := map[string]interface{}{key: arr}
		if err := d.decodeObjectInto(obj, fieldDepth); err != nil {
			return nil, err
		}
		return obj, nil
	}

	if strings.Contains(content, ":") && !strings.HasPrefix(content, "\"") || strings.HasPrefix(content, "\"") && isKeyValueQuoted(content) {
		// Object item: first field shares the marker line.
		fieldLn := ln
		fieldLn.text = content
		fieldLn.indent = contentCol - 1
		key, value, valueCol, err := d.splitKeyValue(fieldLn)
		if err != nil {
			return nil, err
		}

		obj := make(map[string]interface{})
		if value == "" {
			d.pos++
			if d.pos < len(d.lines) && d.lines[d.pos].depth > fieldDepth {
				nested, err := d.decodeObject(fieldDepth + 1)
				if err != nil {
					return nil, err
				}
				obj[key] = nested
			} else {
				obj[key] = map[string]interface{}{}
			}
		} else {
			v, err := d.parseValueToken(value, ln, valueCol)
			if err != nil {
				return nil, err
			}
			obj[key] = v
			d.pos++
		}

		if err := d.decodeObjectInto(obj, fieldDepth); err != nil {
			return nil, err
		}
		return obj, nil
	}

	// Primitive item.
	v, err := d.parseValueToken(content, ln, contentCol)
	if err != nil {
		return nil, err
	}
	d.pos++
	return v, nil
}

// isKeyValueQuoted reports whether content starts with a complete quoted
// key token followed by a colon.
func isKeyValueQuoted(content string) bool {
	end := quotedTokenEnd(content)
	return end > 0 && end < len(content) && content[end] == ':'
}

// parseValueToken decodes the value part of a key-value line or a list
// item. Quoted tokens are unescaped; bare tokens go through scalar
// classification. In strict mode a bare token may not contain a colon or a
// quote, since such strings are required to be quoted.
func (d *decoder) parseValueToken(value string, ln line, col int) (interface{}, error) {
	if strings.HasPrefix(value, "\"") {
		s, err := unquoteString(value)
		if err != nil {
			return nil, d.locate(err, ln, col)
		}
		return s, nil
	}
	if d.strict && strings.ContainsAny(value, ":\"") {
		return nil, newDecodeError(ErrCodeUnexpectedLine, ln, col, "unquoted value %q contains structural characters", value)
	}
	return parseScalarToken(value), nil
}

// parseCellToken decodes one delimiter-separated cell of an inline array
// or tabular row.
func (d *decoder) parseCellToken(cell string, ln line) (interface{}, error) {
	if strings.HasPrefix(cell, "\"") {
		s, err := unquoteString(cell)
		if err != nil {
			return nil, d.locate(err, ln, ln.indent+1)
		}
		return s, nil
	}
	return parseScalarToken(cell), nil
}

// locate fills in line and context information on a positionless error
// produced by the lexical layer. startCol is the 1-based column of the
// token the error's column offset is relative to.
func (d *decoder) locate(err error, ln line, startCol int) error {
	de, ok := err.(*DecodeError)
	if !ok || de.Line > 0 {
		return err
	}
	de.Line = ln.num
	de.Column += startCol
	de.Context = ln.raw
	return de
}

// quotedTokenEnd returns the index just past the closing quote of the
// quoted token at the start of s, or -1 if it never closes.
func quotedTokenEnd(s string) int {
	if len(s) < 2 || s[0] != '"' {
		return -1
	}
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return -1
}

// splitDelimited splits s on delim, honoring quoted spans: a delimiter
// inside double quotes (or after a backslash escape) is literal.
func splitDelimited(s string, delim byte) []string {
	var cells []string
	start := 0
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && inQuotes:
			i++
		case c == '"':
			inQuotes = !inQuotes
		case c == delim && !inQuotes:
			cells = append(cells, s[start:i])
			start = i + 1
		}
	}
	return append(cells, s[start:])
}
