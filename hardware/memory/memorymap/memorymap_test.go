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

package memorymap_test

import (
	"testing"

	"github.com/gopher86/gopher86/hardware/memory/memorymap"
	"github.com/gopher86/gopher86/test"
)

func TestMapAddress(t *testing.T) {
	// addresses below the alias window are returned unchanged
	test.ExpectEquality(t, memorymap.MapAddress(0x000f0100), uint32(0x000f0100))
	test.ExpectEquality(t, memorymap.MapAddress(0x00000000), uint32(0x00000000))
	test.ExpectEquality(t, memorymap.MapAddress(0x00ffff00), uint32(0x00ffff00))
	test.ExpectEquality(t, memorymap.MapAddress(0xfffeffff), uint32(0xfffeffff))

	// the top of the 4GB space folds onto the top of the first megabyte. the
	// reset vector is the classic case
	test.ExpectEquality(t, memorymap.MapAddress(0xfffffff0), uint32(0x000ffff0))
	test.ExpectEquality(t, memorymap.MapAddress(0xffff0000), uint32(0x000f0000))
	test.ExpectEquality(t, memorymap.MapAddress(0xffffffff), uint32(0x000fffff))
}

func TestMapAddressAliasProperty(t *testing.T) {
	// every address in the top 64KB of the first megabyte has an alias at
	// the top of the 4GB space that maps to it
	for p := uint32(0x000f0000); p < 0x00100000; p += 0x101 {
		test.ExpectEquality(t, memorymap.MapAddress(p|memorymap.AliasMask), memorymap.MapAddress(p), p)
	}
}

func TestSegmented(t *testing.T) {
	test.ExpectSuccess(t, memorymap.SpaceReal.Segmented())
	test.ExpectSuccess(t, memorymap.SpaceProt.Segmented())
	test.ExpectSuccess(t, memorymap.SpaceV86.Segmented())
	test.ExpectFailure(t, memorymap.SpaceLinear.Segmented())
	test.ExpectFailure(t, memorymap.SpacePhysical.Segmented())
	test.ExpectFailure(t, memorymap.SpaceNone.Segmented())
}

func TestFormatSegmented(t *testing.T) {
	test.ExpectEquality(t, memorymap.FormatSegmented(0xf000, 0x0100, false), "F000:0100")
	test.ExpectEquality(t, memorymap.FormatSegmented(0x0008, 0x00010100, true), "0008:00010100")
}
