package toon

import (
	"reflect"
	"testing"
)

func TestEncodeBasicTypes(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{"null", nil, "null"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"integer", 42, "42"},
		{"float", 3.14, "3.14"},
		{"whole float", 30.0, "30"},
		{"negative", -5, "-5"},
		{"string", "hello", "hello"},
		{"quoted string", "hello world", "hello world"},
		{"empty object", map[string]interface{}{}, ""},
		{"empty array", []interface{}{}, "[0]:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Encode(tt.input)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestDecodeBasicTypes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected interface{}
	}{
		{"null", "null", nil},
		{"true", "true", true},
		{"false", "false", false},
		{"integer", "42", int64(42)},
		{"negative integer", "-7", int64(-7)},
		{"float", "3.14", 3.14},
		{"string", "hello", "hello"},
		{"quoted string", "\"hello world\"", "hello world"},
		{"leading zero stays string", "05", "05"},
		{"empty object", "", map[string]interface{}{}},
		{"empty array", "[0]:", []interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Decode(tt.input)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Expected %+v, got %+v", tt.expected, result)
			}
		})
	}
}

func TestStringQuoting(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "\"\""},
		{"hello", "hello"},
		{"hello world", "hello world"},
		{"true", "\"true\""},
		{"false", "\"false\""},
		{"null", "\"null\""},
		{"42", "\"42\""},
		{"3.14", "\"3.14\""},
		{"-5", "\"-5\""},
		{"05", "\"05\""},
		{"with:colon", "\"with:colon\""},
		{"with,comma", "\"with,comma\""},
		{"with\"quote", "\"with\\\"quote\""},
		{"with\\backslash", "\"with\\\\backslash\""},
		{"with\nnewline", "\"with\\nnewline\""},
		{"with\ttab", "\"with\\ttab\""},
		{"with\rreturn", "\"with\\rreturn\""},
		{" leading", "\" leading\""},
		{"trailing ", "\"trailing \""},
		{"[bracket", "\"[bracket\""},
		{"{brace", "\"{brace\""},
		{"(paren", "\"(paren\""},
		{"-", "\"-\""},
		{"- item", "\"- item\""},
		{"plain-dash", "plain-dash"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e := newEncoder(EncodeOptions{Indent: 2, Delimiter: ","})
			result := e.encodeString(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestDelimiterSpecificQuoting(t *testing.T) {
	// The pipe is only structural when it is the active delimiter; the
	// comma is always structural.
	result, err := EncodeWithOptions(map[string]interface{}{"v": "has|pipe"}, &EncodeOptions{Delimiter: ","})
	if err != nil {
		t.Fatal(err)
	}
	if result != "v: has|pipe" {
		t.Errorf("Pipe should not be quoted with comma delimiter: %q", result)
	}

	result, err = EncodeWithOptions(map[string]interface{}{"v": "has|pipe"}, &EncodeOptions{Delimiter: "|"})
	if err != nil {
		t.Fatal(err)
	}
	if result != `v: "has|pipe"` {
		t.Errorf("Pipe should be quoted with pipe delimiter: %q", result)
	}
}

func TestKeyQuoting(t *testing.T) {
	data := map[string]interface{}{
		"valid_key":     "value1",
		"key.with.dots": "value2",
		"key with space": "value3",
	}

	result, err := Encode(data)
	if err != nil {
		t.Fatal(err)
	}
	expected := "\"key with space\": value3\nkey.with.dots: value2\nvalid_key: value1"
	if result != expected {
		t.Errorf("Expected %q, got %q", expected, result)
	}

	decoded, err := Decode(result)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(decoded, map[string]interface{}{
		"valid_key":      "value1",
		"key.with.dots":  "value2",
		"key with space": "value3",
	}) {
		t.Errorf("Decoded %+v", decoded)
	}
}

func TestMustVariants(t *testing.T) {
	if MustEncode(map[string]interface{}{"a": 1}) != "a: 1" {
		t.Error("MustEncode returned unexpected output")
	}
	if !reflect.DeepEqual(MustDecode("a: 1"), map[string]interface{}{"a": int64(1)}) {
		t.Error("MustDecode returned unexpected value")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustDecode should panic on invalid input")
		}
	}()
	MustDecode("arr[2]: 1,2,3")
}
