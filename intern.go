package toon

// keyInterner is a small fixed-size cache deduplicating decoded object
// keys, so the repeated keys of tabular rows and list items share one
// string value instead of each row carrying its own copy.
type keyInterner struct {
	entries [256]string
}

func (c *keyInterner) intern(s string) string {
	const maxCachedLen = 256
	if len(s) < 2 || len(s) > maxCachedLen {
		// Single-byte strings are already interned by the runtime.
		return s
	}

	// FNV-1a.
	h := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}

	i := h % uint32(len(c.entries))
	if c.entries[i] == s {
		return c.entries[i]
	}
	c.entries[i] = s
	return s
}

// SymbolTable holds the set of keys a decoder running under
// KeyModeInternExisting will accept. Populate it before decoding; keys
// found in the input but not registered here fail the decode, which keeps
// untrusted input from growing the key set without bound.
type SymbolTable struct {
	symbols map[string]string
}

// NewSymbolTable creates a table pre-registered with the given keys.
func NewSymbolTable(keys ...string) *SymbolTable {
	t := &SymbolTable{symbols: make(map[string]string, len(keys))}
	for _, k := range keys {
		t.Define(k)
	}
	return t
}

// Define registers a key as acceptable.
func (t *SymbolTable) Define(key string) {
	t.symbols[key] = key
}

// lookup returns the table's canonical instance of key.
func (t *SymbolTable) lookup(key string) (string, bool) {
	s, ok := t.symbols[key]
	return s, ok
}
