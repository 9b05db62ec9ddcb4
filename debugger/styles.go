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

import "github.com/charmbracelet/lipgloss"

type styles struct {
	instruction lipgloss.Style
	mem         lipgloss.Style
	symbol      lipgloss.Style
	breakpoint  lipgloss.Style
	notify      lipgloss.Style
	err         lipgloss.Style
}

func newStyles() styles {
	return styles{
		instruction: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		mem:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(5)),
		symbol:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)),
		breakpoint:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(4)),
		notify:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(2)),
		err:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
	}
}
