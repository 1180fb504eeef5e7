package toon

import (
	"regexp"
	"strings"
)

var (
	numericRegex     = regexp.MustCompile(`^-?\d+(?:\.\d+)?(?:e[+-]?\d+)?$`)
	leadingZeroRegex = regexp.MustCompile(`^-?0\d`)
	identifierRegex  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
)

// needsQuoting reports whether s must be wrapped in double quotes to survive
// a round trip when emitted with the given delimiter.
func needsQuoting(s, delimiter string) bool {
	if len(s) == 0 {
		return true
	}

	// Reserved literals would decode as non-strings.
	switch s {
	case "true", "false", "null":
		return true
	}

	// Leading or trailing whitespace is stripped by the line splitter.
	if s[0] == ' ' || s[0] == '\t' || s[len(s)-1] == ' ' || s[len(s)-1] == '\t' {
		return true
	}

	// A bare dash reads as a list item marker.
	if s == "-" || strings.HasPrefix(s, "- ") {
		return true
	}

	for _, c := range s {
		switch c {
		case ':', ',', '[', ']', '{', '}', '(', ')', '"', '\\':
			return true
		}
		if c < 0x20 || c == 0x7f {
			return true
		}
		if strings.ContainsRune(delimiter, c) {
			return true
		}
	}

	// Number-like text would decode as a number; leading-zero forms like
	// "05" must stay strings rather than be reparsed numerically.
	return numericRegex.MatchString(strings.ToLower(s)) || leadingZeroRegex.MatchString(s)
}

// quoteString wraps s in double quotes, escaping exactly five sequences:
// backslash, double quote, newline, carriage return and tab.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// encodeKey quotes an object key unless it is a plain identifier.
func encodeKey(key string) string {
	if identifierRegex.MatchString(key) {
		return key
	}
	return quoteString(key)
}

// unquoteString parses a double-quoted token, inverting the escape table of
// quoteString. It fails on a missing closing quote, on content after the
// closing quote, and on any escape outside the five recognized sequences.
// The returned column offsets are 0-based positions within s.
func unquoteString(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' {
		return "", &DecodeError{Code: ErrCodeUnterminatedString, Message: "expected quoted string"}
	}

	var b strings.Builder
	b.Grow(len(s) - 2)

	i := 1
	for i < len(s) {
		c := s[i]
		switch c {
		case '"':
			if i != len(s)-1 {
				return "", &DecodeError{
					Code:    ErrCodeUnexpectedLine,
					Message: "unexpected content after closing quote",
					Column:  i + 1,
				}
			}
			return b.String(), nil
		case '\\':
			if i+1 >= len(s) {
				return "", &DecodeError{
					Code:    ErrCodeUnterminatedString,
					Message: "unterminated string",
					Column:  i,
				}
			}
			switch s[i+1] {
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				return "", &DecodeError{
					Code:    ErrCodeInvalidEscape,
					Message: "invalid escape sequence \\" + string(s[i+1]),
					Column:  i,
				}
			}
			i += 2
		default:
			b.WriteByte(c)
			i++
		}
	}

	return "", &DecodeError{
		Code:    ErrCodeUnterminatedString,
		Message: "unterminated string",
		Column:  len(s) - 1,
	}
}
