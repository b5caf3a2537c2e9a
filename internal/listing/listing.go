// Package listing turns a directory into the sorted entry sequence shown by
// the list and grid views.
package listing

import (
	"fmt"
	"sort"
	"strings"

	"casper/internal/format"
	"casper/internal/fsys"
	"casper/internal/location"
	"casper/internal/log"
)

// Kind classifies an entry.
type Kind = fsys.Kind

// Entry is one formatted directory child.
type Entry struct {
	Name            string
	Size            int64
	SizeDisplay     string // empty for directories
	ModifiedDisplay string
	Kind            Kind
	Hidden          bool
}

// Record composes the tab-separated display record the listing is sorted by.
func (e Entry) Record() string {
	return fmt.Sprintf("%s\t%s\t%s\t%d", e.Name, e.SizeDisplay, e.ModifiedDisplay, int(e.Kind))
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == fsys.Directory
}

// Listing is an immutable snapshot of a location's children.
type Listing struct {
	Location location.Location
	entries  []Entry
}

// Entries returns a copy of the sorted entries.
func (l Listing) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l Listing) Len() int {
	return len(l.entries)
}

// At returns the i'th entry.
func (l Listing) At(i int) Entry {
	return l.entries[i]
}

// Find returns the entry called name.
func (l Listing) Find(name string) (Entry, bool) {
	for _, e := range l.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// NewEntry formats a raw child.
func NewEntry(c fsys.Child) Entry {
	e := Entry{
		Name:            c.Name,
		Kind:            c.Kind,
		ModifiedDisplay: format.Time(c.ModTime),
		Hidden:          strings.HasPrefix(c.Name, "."),
	}
	if c.Kind != fsys.Directory {
		e.Size = c.Size
		e.SizeDisplay = format.Size(c.Size)
	}
	return e
}

// Build formats and sorts children into a Listing.
func Build(loc location.Location, children []fsys.Child) Listing {
	entries := make([]Entry, len(children))
	for i, c := range children {
		entries[i] = NewEntry(c)
	}
	Sort(entries)
	return Listing{Location: loc, entries: entries}
}

// Sort orders entries by byte-wise comparison of their composed records.
// Directories are not grouped first: "a" (dir) precedes "b.txt" only because
// 'a' < 'b', and "Zeta" precedes "alpha".
func Sort(entries []Entry) {
	type keyed struct {
		record string
		entry  Entry
	}
	keys := make([]keyed, len(entries))
	for i, e := range entries {
		keys[i] = keyed{record: e.Record(), entry: e}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].record < keys[j].record
	})
	for i, k := range keys {
		entries[i] = k.entry
	}
}

// Service loads locations and publishes each successful listing to its
// projections and subscribers.
type Service struct {
	fs          fsys.FS
	current     Listing
	loaded      bool
	projections []*Projection
	subscribers []func(Listing)
}

// NewService creates a Service over fs.
func NewService(fs fsys.FS) *Service {
	return &Service{fs: fs}
}

// Project registers a new projection, filled with the current listing.
func (s *Service) Project(name string) *Projection {
	p := &Projection{name: name}
	if s.loaded {
		p.replace(s.current)
	}
	s.projections = append(s.projections, p)
	return p
}

// Subscribe registers fn to be called after every successful load.
func (s *Service) Subscribe(fn func(Listing)) {
	s.subscribers = append(s.subscribers, fn)
}

// Load enumerates loc and publishes the result. On failure nothing is
// published and the previous listing stays current.
func (s *Service) Load(loc location.Location) (Listing, error) {
	children, err := s.fs.EnumerateChildren(loc)
	if err != nil {
		log.LogWithError(err).Warnf("cannot load %s", loc)
		return Listing{}, err
	}

	listing := Build(loc, children)
	s.current = listing
	s.loaded = true
	for _, p := range s.projections {
		p.replace(listing)
	}
	for _, fn := range s.subscribers {
		fn(listing)
	}

	log.LogWithFields(log.F("location", loc.String()), log.F("entries", listing.Len())).Debug("listing loaded")
	return listing, nil
}

// Refresh reloads the current location.
func (s *Service) Refresh() (Listing, error) {
	if !s.loaded {
		return Listing{}, ErrNothingLoaded
	}
	return s.Load(s.current.Location)
}

// Current returns the last successful listing.
func (s *Service) Current() (Listing, bool) {
	return s.current, s.loaded
}
