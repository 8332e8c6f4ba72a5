package cpp

// EntryKind tags the payload variant of a Table entry (spec.md §3's
// tagged variant over Define/Undefine/Include).
type EntryKind int

const (
	EntryDefine EntryKind = iota
	EntryUndefine
	EntryInclude
)

// IncludeProvider exposes a single read method returning the included
// directive table; the table is not owned by its includer (spec.md §3
// / §4.B), mirroring libmacro.hh's included_macros abstract class.
type IncludeProvider interface {
	GetMacros() *Table
}

// entry is one line-anchored directive. Exactly one of Def, Undef, or
// Include is meaningful, selected by Kind; this is Go's rendition of
// the original's tagged union, with each entry owning its own
// Define/Undefine payload inline and Include entries holding a
// non-owning reference (spec.md's Design Notes §9).
type entry struct {
	Kind    EntryKind
	Line    uint32
	Def     *Definition
	Undef   string
	Include IncludeProvider
}

// Table is an ordered, line-anchored store of define/undefine/include
// directives (spec.md §3/§4.B), grounded on
// original_source/libmacro.cc's macro_table.
type Table struct {
	entries []entry
	inUse   bool
}

// NewTable returns an empty directive table.
func NewTable() *Table {
	return &Table{}
}

// insert places a new entry at lineno, preserving the invariant that
// entries are sorted by line number, stable among equal line numbers.
// Appending at a non-decreasing line number (the expected usage) is
// O(1) amortised; an out-of-order insert falls back to shifting later
// entries down by one slot. This mirrors make_entry's two-path shape
// in the original rather than always binary-inserting.
func (t *Table) insert(lineno uint32) *entry {
	if len(t.entries) == 0 || t.entries[len(t.entries)-1].Line <= lineno {
		t.entries = append(t.entries, entry{})
		return &t.entries[len(t.entries)-1]
	}

	t.entries = append(t.entries, entry{})
	i := len(t.entries) - 1
	for i > 0 && t.entries[i-1].Line > lineno {
		t.entries[i], t.entries[i-1] = t.entries[i-1], t.entries[i]
		i--
	}
	return &t.entries[i]
}

// AddDefine parses def per spec.md §4.C and records it at line.
func (t *Table) AddDefine(line uint32, def string) {
	e := t.insert(line)
	e.Kind = EntryDefine
	e.Line = line
	e.Def = ParseDefinition(def)
}

// AddUndefine records an undefine directive at line.
func (t *Table) AddUndefine(line uint32, name string) {
	e := t.insert(line)
	e.Kind = EntryUndefine
	e.Line = line
	e.Undef = name
}

// AddInclude records a reference to another, non-owned directive table
// at line.
func (t *Table) AddInclude(line uint32, other IncludeProvider) {
	e := t.insert(line)
	e.Kind = EntryInclude
	e.Line = line
	e.Include = other
}

// FindDefine implements the lookup of spec.md §4.B: binary-search for
// the smallest index whose line is >= the query line (or start from
// the end when line == 0, meaning "query against the final state of
// the table"), then walk backward, returning on the first matching
// Define, stopping definitively on a matching Undefine, and recursing
// into Include entries with line == 0.
//
// The inUse guard makes arbitrarily cyclic include graphs safe: it is
// acquired on entry and released on every exit path via defer (a
// scope-guard, per spec.md's Design Notes §9, rather than the
// original's hand-toggled flag) so a cycle short-circuits to "not
// found" instead of recursing forever.
func (t *Table) FindDefine(line uint32, name string) (*Definition, bool) {
	if t.inUse || len(t.entries) == 0 {
		return nil, false
	}
	t.inUse = true
	defer func() { t.inUse = false }()

	var idx int
	if line > 0 {
		lower, upper := 0, len(t.entries)-1
		for lower < upper {
			m := (lower + upper) / 2
			if t.entries[m].Line >= line {
				upper = m
			} else {
				lower = m + 1
			}
		}
		if t.entries[lower].Line < line {
			// Every entry precedes the query line; nothing to walk
			// back from below index len(entries).
			idx = len(t.entries)
		} else {
			idx = lower
		}
	} else {
		idx = len(t.entries)
	}

	for idx > 0 {
		idx--
		e := &t.entries[idx]
		switch e.Kind {
		case EntryDefine:
			if e.Def.Name == name {
				return e.Def, true
			}
		case EntryUndefine:
			if e.Undef == name {
				return nil, false
			}
		case EntryInclude:
			if d, ok := e.Include.GetMacros().FindDefine(0, name); ok {
				return d, true
			}
		}
	}
	return nil, false
}
