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

// Package symbols maintains the symbol table for the loaded machine image.
// Symbols are organised into groups, one per segment of each loaded module,
// and each group keeps a sorted offset index so that address-to-symbol
// resolution can binary search.
//
// Resolution works in both directions: Resolve() from an address (exact or
// nearest match), ResolveByName() from a symbol name. Addresses not covered
// by any group fall back to the bus-level label lookup.
package symbols
