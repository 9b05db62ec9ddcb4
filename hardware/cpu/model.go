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

package cpu

// Model identifies which member of the CPU family is being emulated. Several
// instructions decode differently, or not at all, on the earlier models.
type Model int

func (m Model) String() string {
	switch m {
	case Model8086:
		return "8086"
	case Model80186:
		return "80186"
	case Model80286:
		return "80286"
	case Model80386:
		return "80386"
	}
	return "unknown model"
}

// The list of supported CPU models in increasing capability.
const (
	Model8086 Model = iota
	Model80186
	Model80286
	Model80386
)
