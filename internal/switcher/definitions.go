package switcher

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMalformedTable marks a definition table that cannot be trusted. The
// session refuses to start on it rather than switching unpredictably.
var ErrMalformedTable = errors.New("malformed rig definition table")

// Definition binds a rig variant to the frame at which it becomes active.
type Definition struct {
	Frame float64
	RigID string
}

// Table is the ordered activation table. Exactly one rig is active at any
// frame: the entry with the greatest activation frame not exceeding it, or
// the first entry before any activation frame.
type Table struct {
	defs []Definition
}

// NewTable validates and wraps a definition sequence. Entries must already
// be sorted by activation frame with no duplicates, mirroring how the host
// stores them; violations are configuration errors, not data to repair.
func NewTable(defs []Definition) (*Table, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no definitions", ErrMalformedTable)
	}
	for i, def := range defs {
		if strings.TrimSpace(def.RigID) == "" {
			return nil, fmt.Errorf("%w: entry %d has no rig id", ErrMalformedTable, i)
		}
		if i == 0 {
			continue
		}
		switch {
		case def.Frame == defs[i-1].Frame:
			return nil, fmt.Errorf("%w: duplicate activation frame %v", ErrMalformedTable, def.Frame)
		case def.Frame < defs[i-1].Frame:
			return nil, fmt.Errorf("%w: activation frames not sorted at entry %d (%v after %v)",
				ErrMalformedTable, i, def.Frame, defs[i-1].Frame)
		}
	}
	return &Table{defs: append([]Definition(nil), defs...)}, nil
}

// Definitions returns a copy of the table entries.
func (t *Table) Definitions() []Definition {
	return append([]Definition(nil), t.defs...)
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.defs) }

// RigIDs returns every rig referenced by the table, in activation order.
func (t *Table) RigIDs() []string {
	ids := make([]string, 0, len(t.defs))
	for _, def := range t.defs {
		ids = append(ids, def.RigID)
	}
	return ids
}

// Resolve returns the definition active at a frame.
func (t *Table) Resolve(frame float64) Definition {
	// First entry whose activation frame exceeds the query; the active
	// definition sits just before it. Before the first boundary the first
	// definition is active.
	idx := sort.Search(len(t.defs), func(i int) bool { return t.defs[i].Frame > frame })
	if idx == 0 {
		return t.defs[0]
	}
	return t.defs[idx-1]
}
