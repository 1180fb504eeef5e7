// Package toon implements the TOON (Token-Oriented Object Notation) format.
// TOON is a line-oriented, indentation-based text format that encodes the JSON data model
// with explicit structure and minimal quoting, designed to keep LLM token usage low.
//
// Arrays are encoded in one of three shapes chosen automatically from the data:
//
//	tags[3]: a,b,c          inline  - all elements are primitive
//	users[2]{age,name}:     tabular - uniform objects with primitive fields
//	  30,Alice
//	  25,Bob
//	items[2]:               list    - everything else
//	  - id: 1
//	  - id: 2
//
// The bracketed number is always the element count, letting a reader (or a
// model) know the array length without scanning ahead. A top-level array
// keeps the bracket header with an empty key ("[3]: a,b,c", "[0]:"); the
// decoder additionally accepts a bare list of "- " items at the top level.
package toon

import "github.com/google/uuid"

// EncodeOptions configures TOON encoding behavior.
type EncodeOptions struct {
	Indent       int      // Number of spaces per indentation level (default: 2)
	Delimiter    string   // Delimiter for arrays and tabular data: "," "\t" or "|" (default: ",")
	LengthMarker string   // Optional prefix placed before the element count, e.g. "#" (default: none)
	Observer     Observer // Optional instrumentation hook (default: none)
}

// DecodeOptions configures TOON decoding behavior. The zero value decodes
// strictly; set Lenient to relax validation.
type DecodeOptions struct {
	Lenient  bool         // Tolerate length, blank-line and indentation violations (default: false)
	Indent   int          // Spaces per indentation level, used to validate indentation (default: 2)
	KeyMode  KeyMode      // How decoded object keys are materialized (default: KeyModeStrings)
	Symbols  *SymbolTable // Pre-registered keys, required for KeyModeInternExisting
	Observer Observer     // Optional instrumentation hook (default: none)
}

// KeyMode selects how the decoder materializes object keys.
type KeyMode int

const (
	// KeyModeStrings leaves keys as the plain strings found in the input.
	KeyModeStrings KeyMode = iota

	// KeyModeIntern deduplicates key strings through a bounded cache, so
	// repeated keys (tabular rows, list items) share one string value.
	KeyModeIntern

	// KeyModeInternExisting resolves keys against a caller-supplied
	// SymbolTable and fails on any key not already registered. Use this
	// when decoding untrusted input to keep the key set bounded.
	KeyModeInternExisting
)

// Encode converts a Go value to TOON format.
func Encode(v interface{}) (string, error) {
	return EncodeWithOptions(v, nil)
}

// EncodeWithOptions converts a Go value to TOON format with custom options.
func EncodeWithOptions(v interface{}, opts *EncodeOptions) (string, error) {
	resolved, err := resolveEncodeOptions(opts)
	if err != nil {
		return "", err
	}

	done := observeCall(resolved.Observer, "encode")

	normalized, err := normalizeValue(v)
	if err != nil {
		done(err)
		return "", err
	}

	enc := newEncoder(resolved)
	out, err := enc.encode(normalized)
	done(err)
	return out, err
}

// MustEncode is like Encode but panics on error. It is a thin adapter for
// callers that treat an encode failure as a programming error.
func MustEncode(v interface{}) string {
	out, err := Encode(v)
	if err != nil {
		panic(err)
	}
	return out
}

// Decode parses TOON format and returns the decoded value.
func Decode(data string) (interface{}, error) {
	return DecodeWithOptions(data, nil)
}

// DecodeWithOptions parses TOON format with custom options.
func DecodeWithOptions(data string, opts *DecodeOptions) (interface{}, error) {
	resolved, err := resolveDecodeOptions(opts)
	if err != nil {
		return nil, err
	}

	done := observeCall(resolved.Observer, "decode")

	dec := newDecoder(resolved)
	v, err := dec.decode(data)
	done(err)
	return v, err
}

// MustDecode is like Decode but panics on error.
func MustDecode(data string) interface{} {
	v, err := Decode(data)
	if err != nil {
		panic(err)
	}
	return v
}

func resolveEncodeOptions(opts *EncodeOptions) (EncodeOptions, error) {
	resolved := EncodeOptions{Indent: 2, Delimiter: ","}
	if opts != nil {
		resolved = *opts
	}
	if resolved.Indent == 0 {
		resolved.Indent = 2
	}
	if resolved.Delimiter == "" {
		resolved.Delimiter = ","
	}

	if resolved.Indent < 0 {
		return resolved, newOptionError("indent width must be positive")
	}
	switch resolved.Delimiter {
	case ",", "\t", "|":
	default:
		return resolved, newOptionError("unsupported delimiter %q (use \",\", \"\\t\" or \"|\")", resolved.Delimiter)
	}
	for _, c := range resolved.LengthMarker {
		if c >= '0' && c <= '9' {
			return resolved, newOptionError("length marker must not contain digits")
		}
		switch c {
		case '[', ']', '{', '}', ':', '\n':
			return resolved, newOptionError("length marker must not contain structural characters")
		}
	}
	return resolved, nil
}

func resolveDecodeOptions(opts *DecodeOptions) (DecodeOptions, error) {
	resolved := DecodeOptions{Indent: 2}
	if opts != nil {
		resolved = *opts
	}
	if resolved.Indent == 0 {
		resolved.Indent = 2
	}

	if resolved.Indent < 0 {
		return resolved, newOptionError("indent width must be positive")
	}
	switch resolved.KeyMode {
	case KeyModeStrings, KeyModeIntern:
	case KeyModeInternExisting:
		if resolved.Symbols == nil {
			return resolved, newOptionError("KeyModeInternExisting requires a SymbolTable")
		}
	default:
		return resolved, newOptionError("unsupported key mode %d", int(resolved.KeyMode))
	}
	return resolved, nil
}

// observeCall notifies the observer that a call is starting and returns the
// function used to report its completion. Observers are fire-and-forget:
// they receive notifications but cannot influence the call.
func observeCall(obs Observer, op string) func(error) {
	if obs == nil {
		return func(error) {}
	}
	id, _ := uuid.NewV7()
	obs.Begin(op, id)
	return func(err error) {
		if err != nil {
			obs.Error(op, id, err)
		}
		obs.End(op, id)
	}
}
