package toon

import (
	"strings"
	"testing"
)

func TestEncodeOptionDefaults(t *testing.T) {
	data := map[string]interface{}{"a": map[string]interface{}{"b": 1}}

	// A nil options pointer and the zero options value behave identically.
	out1, err := EncodeWithOptions(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	out2, err := EncodeWithOptions(data, &EncodeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if out1 != out2 {
		t.Errorf("Defaults differ: %q vs %q", out1, out2)
	}
	if out1 != "a:\n  b: 1" {
		t.Errorf("Unexpected default encoding: %q", out1)
	}
}

func TestEncodeCustomIndent(t *testing.T) {
	data := map[string]interface{}{"a": map[string]interface{}{"b": 1}}

	out, err := EncodeWithOptions(data, &EncodeOptions{Indent: 4})
	if err != nil {
		t.Fatal(err)
	}
	if out != "a:\n    b: 1" {
		t.Errorf("Expected 4-space indent, got %q", out)
	}
}

func TestEncodeTabDelimiter(t *testing.T) {
	data := map[string]interface{}{"rows": []interface{}{
		map[string]interface{}{"a": 1, "b": "x"},
		map[string]interface{}{"a": 2, "b": "y"},
	}}

	out, err := EncodeWithOptions(data, &EncodeOptions{Delimiter: "\t"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "rows[2\t]{a\tb}:") {
		t.Errorf("Expected tab-delimited header with annotation, got %q", out)
	}
	if !strings.Contains(out, "1\tx") {
		t.Errorf("Expected tab-delimited row, got %q", out)
	}
}

func TestInvalidEncodeOptions(t *testing.T) {
	tests := []struct {
		name string
		opts *EncodeOptions
	}{
		{"negative indent", &EncodeOptions{Indent: -1}},
		{"bad delimiter", &EncodeOptions{Delimiter: ";"}},
		{"digit length marker", &EncodeOptions{LengthMarker: "x1"}},
		{"structural length marker", &EncodeOptions{LengthMarker: "["}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeWithOptions(map[string]interface{}{"a": 1}, tt.opts)
			if err == nil {
				t.Fatal("Expected option error")
			}
			if _, ok := err.(*OptionError); !ok {
				t.Errorf("Expected *OptionError, got %T: %v", err, err)
			}
		})
	}
}

func TestInvalidDecodeOptions(t *testing.T) {
	tests := []struct {
		name string
		opts *DecodeOptions
	}{
		{"negative indent", &DecodeOptions{Indent: -1}},
		{"unknown key mode", &DecodeOptions{KeyMode: KeyMode(99)}},
		{"intern existing without symbols", &DecodeOptions{KeyMode: KeyModeInternExisting}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeWithOptions("a: 1", tt.opts)
			if err == nil {
				t.Fatal("Expected option error")
			}
			if _, ok := err.(*OptionError); !ok {
				t.Errorf("Expected *OptionError, got %T: %v", err, err)
			}
		})
	}
}

// A partial options struct that never mentions leniency must decode as
// strictly as the zero value does.
func TestDecodeDefaultsStrict(t *testing.T) {
	_, err := DecodeWithOptions("arr[2]: 1,2,3", &DecodeOptions{Indent: 2})
	if err == nil {
		t.Fatal("Expected strict length mismatch error")
	}
	de, ok := err.(*DecodeError)
	if !ok {
		t.Fatalf("Expected *DecodeError, got %T: %v", err, err)
	}
	if de.Code != ErrCodeLengthMismatch {
		t.Errorf("Expected ErrCodeLengthMismatch, got %d", de.Code)
	}
}

func TestDecodeCustomIndent(t *testing.T) {
	input := "a:\n    b: 1\n    c:\n        d: 2"

	result, err := DecodeWithOptions(input, &DecodeOptions{Indent: 4})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	obj := result.(map[string]interface{})
	inner := obj["a"].(map[string]interface{})
	if inner["b"] != int64(1) {
		t.Errorf("Unexpected decode: %+v", result)
	}

	// The same input under the default width over-indents every line.
	_, err = Decode(input)
	if err == nil {
		t.Error("Expected error with default width")
	}
}
