package listing

import "casper/internal/errors"

// ErrNothingLoaded is returned by Refresh before the first Load.
var ErrNothingLoaded = errors.New("no location loaded")

// Projection is one view's copy of the current listing. Every projection of
// a Service is rebuilt wholesale on each load.
type Projection struct {
	name    string
	entries []Entry
	version int
}

// Name identifies the view, e.g. "list" or "grid".
func (p *Projection) Name() string {
	return p.name
}

// Entries returns a copy of the projected entries.
func (p *Projection) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Len returns the number of projected entries.
func (p *Projection) Len() int {
	return len(p.entries)
}

// At returns the i'th projected entry.
func (p *Projection) At(i int) Entry {
	return p.entries[i]
}

// Version counts rebuilds, letting a view skip redundant redraws.
func (p *Projection) Version() int {
	return p.version
}

func (p *Projection) replace(l Listing) {
	p.entries = l.Entries()
	p.version++
}
