// This file is part of Gopher86.
//
// Gopher86 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher86 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher86.  If not, see <https://www.gnu.org/licenses/>.

package symbols

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gopher86/gopher86/hardware/memory/memorymap"
)

// AnonymousPrefix marks a symbol that exists only to carry an inline
// annotation. Anonymous symbols are excluded from name-based lookups and from
// nearest-match results.
const AnonymousPrefix = "."

// Symbol is a single named offset within a Group.
type Symbol struct {
	Name        string
	Offset      uint32
	Selector    uint16
	HasSelector bool
	Annotation  string

	// computed by Group.precompute(). never set by the loader
	Physical    uint32
	HasPhysical bool
}

// Anonymous returns true if the symbol exists only to carry an annotation.
func (s Symbol) Anonymous() bool {
	return strings.HasPrefix(s.Name, AnonymousPrefix)
}

// Location is the currency of symbol resolution: a named point in the address
// space. Delta is the signed distance from the symbol to the address that was
// queried (zero for exact matches and for name-based lookups).
type Location struct {
	Name        string
	Offset      uint32
	Selector    uint16
	HasSelector bool
	Physical    uint32
	HasPhysical bool
	Annotation  string
	Delta       int64
}

func (l Location) String() string {
	if l.Delta == 0 {
		return l.Name
	}
	return fmt.Sprintf("%s%+#x", l.Name, l.Delta)
}

// Group is a contiguous named region of address space populated with symbols.
// One segment of one loaded module.
type Group struct {
	Module     string
	Segment    int
	Selector   uint16
	BaseOffset uint32
	Length     uint32

	// physical address of BaseOffset. not all loaders know this
	Base    uint32
	HasBase bool

	// keyed by lower-case symbol name
	Symbols map[string]*Symbol

	// index of symbols sorted by offset. maintained by precompute() and
	// always in ascending offset order so that resolution can binary search
	index []*Symbol
}

// precompute builds the sorted offset index and fills in the physical address
// of every symbol. Called once when the group is added to the table.
func (grp *Group) precompute() {
	grp.index = make([]*Symbol, 0, len(grp.Symbols))

	for _, s := range grp.Symbols {
		if grp.HasBase && !s.HasPhysical {
			s.Physical = memorymap.MapAddress(grp.Base + (s.Offset - grp.BaseOffset))
			s.HasPhysical = true
		} else if s.HasPhysical {
			s.Physical = memorymap.MapAddress(s.Physical)
		}
		grp.index = append(grp.index, s)
	}

	sort.SliceStable(grp.index, func(i, j int) bool {
		return grp.index[i].Offset < grp.index[j].Offset
	})
}

// contains returns the offset of the query within the group and true if the
// group covers the queried address. Matching is by selector:offset when the
// query has a selector, by physical range otherwise.
func (grp *Group) contains(q Query) (uint32, bool) {
	if q.HasSelector {
		if q.Selector != grp.Selector {
			return 0, false
		}
		if q.Offset < grp.BaseOffset || q.Offset >= grp.BaseOffset+grp.Length {
			return 0, false
		}
		return q.Offset, true
	}

	if q.HasPhysical && grp.HasBase {
		p := memorymap.MapAddress(q.Physical)
		if p < grp.Base || p >= grp.Base+grp.Length {
			return 0, false
		}
		return grp.BaseOffset + (p - grp.Base), true
	}

	return 0, false
}

// exact binary searches the offset index for a symbol at precisely the given
// offset. Anonymous symbols are legitimate exact matches; their annotation is
// often the entire point of the entry.
func (grp *Group) exact(off uint32) *Location {
	i := sort.Search(len(grp.index), func(i int) bool {
		return grp.index[i].Offset >= off
	})
	if i == len(grp.index) || grp.index[i].Offset != off {
		return nil
	}
	return grp.location(grp.index[i], 0)
}

// nearest returns the closest named symbol before and after the given offset.
// Either return value may be nil.
func (grp *Group) nearest(off uint32) (*Location, *Location) {
	i := sort.Search(len(grp.index), func(i int) bool {
		return grp.index[i].Offset >= off
	})

	var before, after *Location

	for j := i - 1; j >= 0; j-- {
		if !grp.index[j].Anonymous() {
			before = grp.location(grp.index[j], int64(off)-int64(grp.index[j].Offset))
			break
		}
	}

	for j := i; j < len(grp.index); j++ {
		if grp.index[j].Offset == off {
			continue
		}
		if !grp.index[j].Anonymous() {
			after = grp.location(grp.index[j], int64(off)-int64(grp.index[j].Offset))
			break
		}
	}

	return before, after
}

func (grp *Group) location(s *Symbol, delta int64) *Location {
	loc := &Location{
		Name:        s.Name,
		Offset:      s.Offset,
		Physical:    s.Physical,
		HasPhysical: s.HasPhysical,
		Annotation:  s.Annotation,
		Delta:       delta,
	}
	if s.HasSelector {
		loc.Selector = s.Selector
		loc.HasSelector = true
	} else {
		loc.Selector = grp.Selector
		loc.HasSelector = true
	}
	return loc
}

func (grp Group) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s(%d) %04x:%08x len=%d\n", grp.Module, grp.Segment, grp.Selector, grp.BaseOffset, grp.Length))
	for _, e := range grp.index {
		if e.Anonymous() {
			continue
		}
		s.WriteString(fmt.Sprintf("  %08x -> %s\n", e.Offset, e.Name))
	}
	return s.String()
}

// NewGroup is a convenience constructor for loaders. Symbols are supplied as
// a plain slice; the map keying and offset index are built internally.
func NewGroup(module string, segment int, sel uint16, baseOffset uint32, length uint32, syms []Symbol) Group {
	grp := Group{
		Module:     module,
		Segment:    segment,
		Selector:   sel,
		BaseOffset: baseOffset,
		Length:     length,
		Symbols:    make(map[string]*Symbol, len(syms)),
	}
	for i := range syms {
		s := syms[i]
		grp.Symbols[strings.ToLower(s.Name)] = &s
	}
	return grp
}

// SetBase gives the group a physical base address. Must be called before the
// group is added to the symbol table if physical-range resolution is wanted.
func (grp *Group) SetBase(base uint32) {
	grp.Base = memorymap.MapAddress(base)
	grp.HasBase = true
}
