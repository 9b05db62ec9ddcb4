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

package symbols_test

import (
	"testing"

	"github.com/gopher86/gopher86/symbols"
	"github.com/gopher86/gopher86/test"
)

func testTable() *symbols.Symbols {
	sym := symbols.NewSymbols(nil)

	grp := symbols.NewGroup("KERNEL", 1, 0x0100, 0x0000, 0x1000, []symbols.Symbol{
		{Name: "entry", Offset: 0x0000},
		{Name: "dispatch", Offset: 0x0040},
		{Name: symbols.AnonymousPrefix + "loop", Offset: 0x0050},
		{Name: "exit", Offset: 0x0100},
	})
	sym.AddGroup(grp)

	return sym
}

func TestResolveExact(t *testing.T) {
	sym := testTable()

	res, ok := sym.Resolve(symbols.Query{
		Selector:    0x0100,
		HasSelector: true,
		Offset:      0x0040,
	}, false)
	test.ExpectSuccess(t, ok)
	test.DemandSuccess(t, res.Exact != nil)
	test.ExpectEquality(t, res.Exact.Name, "dispatch")

	// no symbol at the queried offset and no nearest search requested
	res, ok = sym.Resolve(symbols.Query{
		Selector:    0x0100,
		HasSelector: true,
		Offset:      0x0041,
	}, false)
	test.ExpectFailure(t, ok)
	test.ExpectSuccess(t, res.Exact == nil)
}

func TestResolveNearest(t *testing.T) {
	sym := testTable()

	// 0x0060 sits between the anonymous .loop symbol at 0x0050 and exit at
	// 0x0100. anonymous symbols are skipped by the nearest search
	res, ok := sym.Resolve(symbols.Query{
		Selector:    0x0100,
		HasSelector: true,
		Offset:      0x0060,
	}, true)
	test.ExpectSuccess(t, ok)
	test.ExpectSuccess(t, res.Exact == nil)
	test.DemandSuccess(t, res.Before != nil)
	test.ExpectEquality(t, res.Before.Name, "dispatch")
	test.DemandSuccess(t, res.After != nil)
	test.ExpectEquality(t, res.After.Name, "exit")
}

func TestResolveByNameRoundTrip(t *testing.T) {
	sym := testTable()

	// resolveByName followed by resolve on the returned address gives back
	// the same symbol
	loc, ok := sym.ResolveByName("dispatch")
	test.DemandSuccess(t, ok)

	res, ok := sym.Resolve(symbols.Query{
		Selector:    loc.Selector,
		HasSelector: loc.HasSelector,
		Offset:      loc.Offset,
	}, false)
	test.ExpectSuccess(t, ok)
	test.DemandSuccess(t, res.Exact != nil)
	test.ExpectEquality(t, res.Exact.Name, "dispatch")

	// lookup is case-insensitive
	_, ok = sym.ResolveByName("DISPATCH")
	test.ExpectSuccess(t, ok)

	// unknown name
	_, ok = sym.ResolveByName("nosuchsymbol")
	test.ExpectFailure(t, ok)
}

func TestGroupReplacement(t *testing.T) {
	sym := testTable()

	// a group with the same module and segment replaces the original
	grp := symbols.NewGroup("KERNEL", 1, 0x0100, 0x0000, 0x1000, []symbols.Symbol{
		{Name: "entry2", Offset: 0x0000},
	})
	sym.AddGroup(grp)

	_, ok := sym.ResolveByName("dispatch")
	test.ExpectFailure(t, ok)
	_, ok = sym.ResolveByName("entry2")
	test.ExpectSuccess(t, ok)
}

func TestRemoveGroup(t *testing.T) {
	sym := testTable()

	test.ExpectSuccess(t, sym.RemoveGroup("KERNEL"))
	_, ok := sym.ResolveByName("entry")
	test.ExpectFailure(t, ok)

	// removing again finds nothing
	test.ExpectFailure(t, sym.RemoveGroup("KERNEL"))
}

func TestGroups(t *testing.T) {
	sym := testTable()

	grps := sym.Groups()
	test.DemandEquality(t, len(grps), 1)
	test.ExpectEquality(t, grps[0].Module, "KERNEL")

	// the returned groups restore cleanly into a fresh table
	sym2 := symbols.NewSymbols(nil)
	for _, grp := range grps {
		sym2.AddGroup(grp)
	}
	_, ok := sym2.ResolveByName("dispatch")
	test.ExpectSuccess(t, ok)
}
