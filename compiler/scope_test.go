package compiler

import (
	"testing"
)

func TestScopeSingleLookup(t *testing.T) {
	interner := NewInterner()
	a := interner.Intern("a")
	b := interner.Intern("b")

	scope := NewScope(nil)
	scope.Define(a, ValueConstructor{Origin: MakeSpan(4, 5, 0)})

	binding, ok := scope.Lookup(a)
	if !ok {
		t.Fatal("a not found after Define")
	}
	if binding.Origin != MakeSpan(4, 5, 0) {
		t.Errorf("origin = %s, want 4..5", binding.Origin)
	}
	if _, ok := scope.Lookup(b); ok {
		t.Error("b found without a definition")
	}
}

func TestScopeShadowingInSameScope(t *testing.T) {
	interner := NewInterner()
	a := interner.Intern("a")

	scope := NewScope(nil)
	scope.Define(a, ValueConstructor{Origin: MakeSpan(0, 1, 0)})
	scope.Define(a, ValueConstructor{Origin: MakeSpan(10, 11, 0)})

	binding, ok := scope.Lookup(a)
	if !ok {
		t.Fatal("a not found")
	}
	if binding.Origin != MakeSpan(10, 11, 0) {
		t.Errorf("origin = %s, want the shadowing definition at 10..11", binding.Origin)
	}
}

func TestScopeInheritedLookup(t *testing.T) {
	interner := NewInterner()
	a := interner.Intern("a")
	b := interner.Intern("b")

	parent := NewScope(nil)
	parent.Define(a, ValueConstructor{Origin: MakeSpan(0, 1, 0)})

	inner := NewScope(parent)
	inner.Define(b, ValueConstructor{Origin: MakeSpan(5, 6, 0)})

	if _, ok := inner.Lookup(a); !ok {
		t.Error("a not visible from the inner scope")
	}
	if _, ok := inner.Lookup(b); !ok {
		t.Error("b not found in its own scope")
	}
	if _, ok := parent.Lookup(b); ok {
		t.Error("b leaked into the parent scope")
	}
	if _, ok := inner.LookupLocal(a); ok {
		t.Error("LookupLocal crossed the scope boundary")
	}
}

func TestScopeInheritedShadowing(t *testing.T) {
	interner := NewInterner()
	a := interner.Intern("a")

	parent := NewScope(nil)
	parent.Define(a, ValueConstructor{Origin: MakeSpan(0, 1, 0)})

	inner := NewScope(parent)
	inner.Define(a, ValueConstructor{Origin: MakeSpan(5, 6, 0)})

	binding, _ := inner.Lookup(a)
	if binding.Origin != MakeSpan(5, 6, 0) {
		t.Errorf("inner origin = %s, want 5..6", binding.Origin)
	}
	binding, _ = parent.Lookup(a)
	if binding.Origin != MakeSpan(0, 1, 0) {
		t.Errorf("parent origin = %s, want the original definition at 0..1", binding.Origin)
	}
}

func TestScopeNotFoundDiagnostic(t *testing.T) {
	diag := NotFoundInScope("total", MakeSpan(7, 12, 0))
	if diag.Code != CodeScopeError {
		t.Errorf("code = %q, want %q", diag.Code, CodeScopeError)
	}
	if diag.Severity != SeverityError {
		t.Errorf("severity = %v, want error", diag.Severity)
	}
	if diag.Message != "`total` is not found in this scope" {
		t.Errorf("message = %q", diag.Message)
	}
}
