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
	"strings"
	"sync"
	"unicode"

	"github.com/gopher86/gopher86/hardware/memory/bus"
	"github.com/gopher86/gopher86/logger"
)

// Symbols contains all currently defined symbol groups. Groups arrive from
// module load notifications and leave on unload notifications.
type Symbols struct {
	crit sync.Mutex

	groups []*Group

	// fallback for addresses not covered by any group. may be nil
	labels bus.Labeller
}

// NewSymbols is the preferred method of initialisation for the Symbols type.
// The labeller may be nil if the bus offers no low-level labels.
func NewSymbols(labels bus.Labeller) *Symbols {
	return &Symbols{
		groups: make([]*Group, 0),
		labels: labels,
	}
}

// AddGroup registers a symbol group. Physical addresses for every symbol in
// the group are computed once, here, rather than on every resolution. A group
// with the same module name and segment number as an existing group replaces
// it.
func (sym *Symbols) AddGroup(grp Group) {
	sym.crit.Lock()
	defer sym.crit.Unlock()

	grp.precompute()

	for i := range sym.groups {
		if sym.groups[i].Module == grp.Module && sym.groups[i].Segment == grp.Segment {
			sym.groups[i] = &grp
			return
		}
	}

	sym.groups = append(sym.groups, &grp)
	logger.Logf(logger.Allow, "symbols", "group %s(%d) added (%d symbols)", grp.Module, grp.Segment, len(grp.Symbols))
}

// RemoveGroup removes every group registered under the module name. Returns
// true if any group was removed.
func (sym *Symbols) RemoveGroup(module string) bool {
	sym.crit.Lock()
	defer sym.crit.Unlock()

	removed := false
	keep := sym.groups[:0]
	for _, grp := range sym.groups {
		if grp.Module == module {
			removed = true
			continue
		}
		keep = append(keep, grp)
	}
	sym.groups = keep

	if removed {
		logger.Logf(logger.Allow, "symbols", "group %s removed", module)
	}

	return removed
}

// RemoveGroupBySelector removes every group registered under the selector.
// Returns true if any group was removed.
func (sym *Symbols) RemoveGroupBySelector(sel uint16) bool {
	sym.crit.Lock()
	defer sym.crit.Unlock()

	removed := false
	keep := sym.groups[:0]
	for _, grp := range sym.groups {
		if grp.Selector == sel {
			removed = true
			continue
		}
		keep = append(keep, grp)
	}
	sym.groups = keep

	return removed
}

// Query identifies the address being resolved by the Resolve() function. A
// query can be made by selector:offset, by physical address, or both.
type Query struct {
	Selector    uint16
	HasSelector bool
	Offset      uint32
	Physical    uint32
	HasPhysical bool
}

// Resolution is returned by the Resolve() function. Exact is nil if no symbol
// sits at the queried address. When a nearest match was requested, Before and
// After are the closest named symbols either side of the address, each
// carrying the signed delta from the symbol to the address.
type Resolution struct {
	Exact  *Location
	Before *Location
	After  *Location
}

// Resolve locates the group covering the queried address and searches it for
// a symbol at the exact offset. If nearest is true the closest preceding and
// following named symbols are returned as well. The ok return is false when
// no group covers the address and the bus-level label fallback also failed.
func (sym *Symbols) Resolve(q Query, nearest bool) (Resolution, bool) {
	sym.crit.Lock()
	defer sym.crit.Unlock()

	for _, grp := range sym.groups {
		off, ok := grp.contains(q)
		if !ok {
			continue
		}

		res := Resolution{}
		res.Exact = grp.exact(off)
		if nearest {
			res.Before, res.After = grp.nearest(off)
		}

		if res.Exact == nil && res.Before == nil && res.After == nil {
			continue
		}

		return res, true
	}

	// no group covers the address. fall back to bus-level labels
	if sym.labels != nil && q.HasPhysical {
		if l := sym.labels.Label(q.Physical); l != "" {
			return Resolution{
				Exact: &Location{
					Name:        l,
					Offset:      q.Offset,
					Physical:    q.Physical,
					HasPhysical: true,
				},
			}, true
		}
	}

	return Resolution{}, false
}

// ResolveByName performs a case-insensitive exact lookup of a symbol name.
// Lookup is restricted to identifier-shaped strings; anything else returns
// immediately with ok equal to false, allowing callers to try the string as a
// numeric address without a table scan. Anonymous annotation entries are
// never returned.
func (sym *Symbols) ResolveByName(name string) (Location, bool) {
	if !identifierShaped(name) {
		return Location{}, false
	}

	sym.crit.Lock()
	defer sym.crit.Unlock()

	key := strings.ToLower(name)

	for _, grp := range sym.groups {
		s, ok := grp.Symbols[key]
		if !ok {
			continue
		}

		loc := Location{
			Name:       s.Name,
			Offset:     s.Offset,
			Annotation: s.Annotation,
		}

		// a symbol with no selector of its own borrows the default selector
		// of the owning group
		if s.HasSelector {
			loc.Selector = s.Selector
			loc.HasSelector = true
		} else {
			loc.Selector = grp.Selector
			loc.HasSelector = true
		}

		loc.Physical = s.Physical
		loc.HasPhysical = s.HasPhysical

		return loc, true
	}

	return Location{}, false
}

// identifierShaped returns true if the string looks like a symbol name rather
// than a number or an expression.
func identifierShaped(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' && r != '@' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '@' && r != '$' {
			return false
		}
	}
	return true
}

// Groups returns a copy of the registered group list, in registration order.
// Useful for state save; feed the groups back through AddGroup() to restore.
func (sym *Symbols) Groups() []Group {
	sym.crit.Lock()
	defer sym.crit.Unlock()

	grps := make([]Group, 0, len(sym.groups))
	for _, grp := range sym.groups {
		grps = append(grps, *grp)
	}
	return grps
}

func (sym *Symbols) String() string {
	sym.crit.Lock()
	defer sym.crit.Unlock()

	s := strings.Builder{}
	for _, grp := range sym.groups {
		s.WriteString(fmt.Sprintf("%s\n", grp))
	}
	return s.String()
}
