package toon

import (
	"reflect"
	"testing"
)

func TestKeyInterner(t *testing.T) {
	var c keyInterner

	first := c.intern("hello")
	second := c.intern("hello")
	if first != second {
		t.Error("Interned strings should be equal")
	}

	// Short and oversized strings bypass the cache but are still returned
	// unchanged.
	if c.intern("a") != "a" {
		t.Error("Single-byte string should pass through")
	}
	long := string(make([]byte, 300))
	if c.intern(long) != long {
		t.Error("Oversized string should pass through")
	}
}

func TestDecodeKeyModeIntern(t *testing.T) {
	input := "users[3]{age,name}:\n  30,Alice\n  25,Bob\n  41,Carol"

	result, err := DecodeWithOptions(input, &DecodeOptions{KeyMode: KeyModeIntern})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	expected := map[string]interface{}{"users": []interface{}{
		map[string]interface{}{"age": int64(30), "name": "Alice"},
		map[string]interface{}{"age": int64(25), "name": "Bob"},
		map[string]interface{}{"age": int64(41), "name": "Carol"},
	}}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %+v, got %+v", expected, result)
	}
}

func TestDecodeKeyModeInternExisting(t *testing.T) {
	symbols := NewSymbolTable("age", "name", "users")
	input := "users[2]{age,name}:\n  30,Alice\n  25,Bob"

	result, err := DecodeWithOptions(input, &DecodeOptions{
		KeyMode: KeyModeInternExisting,
		Symbols: symbols,
	})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	expected := map[string]interface{}{"users": []interface{}{
		map[string]interface{}{"age": int64(30), "name": "Alice"},
		map[string]interface{}{"age": int64(25), "name": "Bob"},
	}}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %+v, got %+v", expected, result)
	}
}

func TestDecodeKeyModeInternExistingUnknownKey(t *testing.T) {
	symbols := NewSymbolTable("age")

	_, err := DecodeWithOptions("name: Alice", &DecodeOptions{
		KeyMode: KeyModeInternExisting,
		Symbols: symbols,
	})
	if err == nil {
		t.Fatal("Expected error for unregistered key")
	}
	de, ok := err.(*DecodeError)
	if !ok {
		t.Fatalf("Expected *DecodeError, got %T: %v", err, err)
	}
	if de.Code != ErrCodeUnknownKey {
		t.Errorf("Expected ErrCodeUnknownKey, got %d", de.Code)
	}
}

func TestSymbolTableDefine(t *testing.T) {
	symbols := NewSymbolTable()
	symbols.Define("later")

	if _, ok := symbols.lookup("later"); !ok {
		t.Error("Defined key should resolve")
	}
	if _, ok := symbols.lookup("missing"); ok {
		t.Error("Undefined key should not resolve")
	}
}
