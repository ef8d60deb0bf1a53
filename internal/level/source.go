package level

import "sync/atomic"

// Source hands out the current table. Readers take a snapshot at round
// start; Store swaps in a replacement without locking readers out.
type Source struct {
	current atomic.Pointer[Table]
}

// NewSource creates a source serving t.
func NewSource(t *Table) *Source {
	s := &Source{}
	s.current.Store(t)
	return s
}

// Table returns the current table.
func (s *Source) Table() *Table {
	return s.current.Load()
}

// Store replaces the current table.
func (s *Source) Store(t *Table) {
	s.current.Store(t)
}
