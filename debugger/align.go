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

package debugger

import "golang.org/x/exp/constraints"

// alignDown rounds a down to a multiple of b. b must be a power of two.
func alignDown[I constraints.Integer](a, b I) I {
	return a &^ (b - 1)
}

// clamp limits v to the range [lo, hi].
func clamp[I constraints.Ordered](v, lo, hi I) I {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
