package jack

import "fmt"

// SymbolTable replaces the teacher's ScopeTable, which stored variables on a
// LIFO utils.Stack and returned the stack position as the VM index — wrong as
// soon as a lookup happens after more variables have been pushed on top,
// since the position shifts. Here each kind owns its own monotonic counter
// assigned once at declaration time (§4.3.1), so a Variable's Index never
// changes after it is registered.
//
// Two tables exist: one for the whole class (kinds Static, Field) and one
// per subroutine (kinds Parameter, Local), cleared at the start of each
// subroutine. Lookup consults the subroutine table first, then the class
// table, so a parameter or local shadows a same-named field.
type SymbolTable struct {
	entries map[string]Variable
	counts  map[VarKind]uint16
}

// NewSymbolTable returns an empty table ready to register variables.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		entries: map[string]Variable{},
		counts:  map[VarKind]uint16{},
	}
}

// Define registers a new Variable, assigning it the next free index for its
// kind. Re-defining a name within the same table shadows the earlier entry.
func (st *SymbolTable) Define(name string, kind VarKind, dType DataType) Variable {
	v := Variable{Name: name, Kind: kind, Type: dType, Index: st.counts[kind]}
	st.entries[name] = v
	st.counts[kind]++
	return v
}

// Count returns how many variables of 'kind' have been registered so far.
func (st *SymbolTable) Count(kind VarKind) uint16 { return st.counts[kind] }

// Resolve looks up 'name' in this table only.
func (st *SymbolTable) Resolve(name string) (Variable, bool) {
	v, ok := st.entries[name]
	return v, ok
}

// scopeChain resolves a name by consulting the subroutine table first, then
// the enclosing class table, per §4.3.1's lookup order.
type scopeChain struct {
	subroutine *SymbolTable
	class      *SymbolTable
}

func (s scopeChain) resolve(name string) (Variable, error) {
	if v, ok := s.subroutine.Resolve(name); ok {
		return v, nil
	}
	if v, ok := s.class.Resolve(name); ok {
		return v, nil
	}
	return Variable{}, fmt.Errorf("undeclared identifier '%s'", name)
}
