// Package symbols implements the process-wide symbol interner: a
// bidirectional mapping between names and dense 64-bit identifiers.
package symbols

// SymbolID identifies an interned name. IDs are contiguous and assigned in
// first-seen order; 0 is a valid id.
type SymbolID uint64

// Table interns names. Not safe for concurrent use; callers serialize.
type Table struct {
	byID  []string
	index map[string]SymbolID
}

// NewTable creates an empty symbol table.
func NewTable() *Table {
	return &Table{
		index: make(map[string]SymbolID, 64),
	}
}

// Value returns the id for a name, assigning the next id on first sight.
func (t *Table) Value(name string) SymbolID {
	if id, ok := t.index[name]; ok {
		return id
	}
	// Copy so the table does not pin the caller's backing buffer.
	cpy := string([]byte(name))
	id := SymbolID(len(t.byID))
	t.byID = append(t.byID, cpy)
	t.index[cpy] = id
	return id
}

// Name returns the original string for an id.
func (t *Table) Name(id SymbolID) string {
	if int(id) >= len(t.byID) {
		return ""
	}
	return t.byID[id]
}

// Has reports whether the id has been assigned.
func (t *Table) Has(id SymbolID) bool {
	return int(id) < len(t.byID)
}

// Len returns the number of interned names.
func (t *Table) Len() int {
	return len(t.byID)
}

var global = NewTable()

// Value interns a name in the process-wide table.
func Value(name string) SymbolID {
	return global.Value(name)
}

// Name looks up a name in the process-wide table.
func Name(id SymbolID) string {
	return global.Name(id)
}
