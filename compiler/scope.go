package compiler

// ValueConstructor records where a symbol was bound.
type ValueConstructor struct {
	Origin Span
}

// Scope is a lexical scope. Lookups fall through to the parent chain;
// redefining a symbol in the same scope shadows the previous binding.
type Scope struct {
	parent  *Scope
	symbols map[Symbol]ValueConstructor
}

// NewScope creates a scope. parent may be nil for the outermost scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent:  parent,
		symbols: make(map[Symbol]ValueConstructor),
	}
}

// Parent returns the enclosing scope, or nil.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Define binds symbol in this scope, shadowing any previous binding here
// or in a parent.
func (s *Scope) Define(symbol Symbol, binding ValueConstructor) {
	s.symbols[symbol] = binding
}

// Lookup resolves symbol in this scope or the closest parent that binds
// it.
func (s *Scope) Lookup(symbol Symbol) (ValueConstructor, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if binding, ok := scope.symbols[symbol]; ok {
			return binding, true
		}
	}
	return ValueConstructor{}, false
}

// LookupLocal resolves symbol in this scope only, ignoring parents.
func (s *Scope) LookupLocal(symbol Symbol) (ValueConstructor, bool) {
	binding, ok := s.symbols[symbol]
	return binding, ok
}

// Len reports how many symbols this scope binds directly.
func (s *Scope) Len() int {
	return len(s.symbols)
}

// NotFoundInScope builds the diagnostic for a failed lookup.
func NotFoundInScope(name string, span Span) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Span:     span,
		Code:     CodeScopeError,
		Message:  "`" + name + "` is not found in this scope",
	}
}
