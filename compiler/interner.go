package compiler

// ---------------------------------------------------------------------------
// Identifier interner
// ---------------------------------------------------------------------------

// Symbol is an opaque handle for an interned identifier. Symbols produced
// by different Interner instances are not comparable.
type Symbol uint32

// Interner deduplicates identifier text and hands out stable integer
// handles for it. It is shared between the lexer and every later stage of
// a compilation; parallel parses need either private instances or external
// locking.
type Interner struct {
	symbols map[string]Symbol
	strings []string
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{symbols: make(map[string]Symbol)}
}

// Intern returns the symbol for text, creating one on first use.
// Interning the same text twice yields the same symbol.
func (i *Interner) Intern(text string) Symbol {
	if sym, ok := i.symbols[text]; ok {
		return sym
	}
	sym := Symbol(len(i.strings))
	i.symbols[text] = sym
	i.strings = append(i.strings, text)
	return sym
}

// Resolve returns the text for a symbol produced by this interner.
func (i *Interner) Resolve(sym Symbol) (string, bool) {
	if int(sym) >= len(i.strings) {
		return "", false
	}
	return i.strings[sym], true
}

// Len returns the number of distinct interned strings.
func (i *Interner) Len() int {
	return len(i.strings)
}
