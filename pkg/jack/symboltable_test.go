package jack_test

import (
	"testing"

	"github.com/hmny-dev/n2t-core/pkg/jack"
)

func TestSymbolTableIndicesAreStableAfterFurtherDeclarations(t *testing.T) {
	st := jack.NewSymbolTable()

	first := st.Define("a", jack.Local, jack.DataType{Main: jack.Int})
	st.Define("b", jack.Local, jack.DataType{Main: jack.Int})
	st.Define("c", jack.Parameter, jack.DataType{Main: jack.Int})

	// 'a' was declared first; its index must stay 0 even though more
	// variables were registered afterwards (the teacher's Stack-backed
	// ScopeTable returned the LIFO position here, which would have shifted).
	resolved, ok := st.Resolve("a")
	if !ok || resolved != first {
		t.Fatalf("expected 'a' to resolve to its original entry %+v, got %+v (found=%v)", first, resolved, ok)
	}
	if resolved.Index != 0 {
		t.Fatalf("expected 'a' to keep index 0, got %d", resolved.Index)
	}
}

func TestSymbolTablePerKindCounters(t *testing.T) {
	st := jack.NewSymbolTable()

	st.Define("a", jack.Local, jack.DataType{Main: jack.Int})
	st.Define("b", jack.Local, jack.DataType{Main: jack.Char})
	st.Define("arg0", jack.Parameter, jack.DataType{Main: jack.Int})

	if got := st.Count(jack.Local); got != 2 {
		t.Fatalf("expected 2 locals, got %d", got)
	}
	if got := st.Count(jack.Parameter); got != 1 {
		t.Fatalf("expected 1 parameter, got %d", got)
	}
}

func TestSymbolTableShadowing(t *testing.T) {
	st := jack.NewSymbolTable()

	st.Define("x", jack.Local, jack.DataType{Main: jack.Int})
	shadowed := st.Define("x", jack.Local, jack.DataType{Main: jack.Char})

	resolved, ok := st.Resolve("x")
	if !ok || resolved != shadowed {
		t.Fatalf("expected the later declaration to win, got %+v", resolved)
	}
	if resolved.Index != 1 {
		t.Fatalf("expected shadowing declaration to still get a fresh index (1), got %d", resolved.Index)
	}
}

func TestSymbolTableUndeclaredLookup(t *testing.T) {
	st := jack.NewSymbolTable()
	if _, ok := st.Resolve("missing"); ok {
		t.Fatalf("expected 'missing' to be unresolved")
	}
}
