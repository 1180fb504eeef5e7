package toon

import (
	"math"
	"strconv"
	"strings"
)

// formatScalar renders a canonical primitive as its unquoted text form.
// Strings go through needsQuoting separately; this handles the rest.
func formatScalar(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return formatFloat(val)
	}
	return ""
}

// formatFloat renders a float in plain decimal notation, never scientific.
// Whole values render without a decimal point. NaN and the infinities have
// no text form and encode as null.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseScalarToken classifies a bare (unquoted, trimmed) token in order:
// reserved literal, number, plain string. Leading zeros disqualify numeric
// interpretation, so "05" stays a string.
func parseScalarToken(s string) interface{} {
	switch s {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}

	if !looksNumeric(s) {
		return s
	}
	if leadingZeroRegex.MatchString(s) {
		return s
	}

	if !strings.ContainsAny(s, ".eE") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// looksNumeric reports whether s matches the integer or decimal grammar.
func looksNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}
	c := s[0]
	if c != '-' && (c < '0' || c > '9') {
		return false
	}
	return numericRegex.MatchString(strings.ToLower(s))
}
