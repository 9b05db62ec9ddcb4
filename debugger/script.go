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

import (
	"strings"

	"github.com/gopher86/gopher86/curated"
	"github.com/gopher86/gopher86/logger"
)

// error pattern for the curated package.
const MalformedScript = "malformed command script: %v"

// CommandHost executes breakpoint command scripts on the debugger's behalf.
// The debugger core owns no command language of its own; the host's command
// layer supplies one through this interface.
type CommandHost interface {
	// RunCommand executes a single command. An error aborts the remainder of
	// the script and halts execution.
	RunCommand(cmd string) error

	// Evaluate evaluates the condition of an "if" command.
	Evaluate(cond string) (bool, error)
}

type commandKind int

const (
	cmdPlain commandKind = iota
	cmdIf
	cmdElse
)

type command struct {
	kind commandKind
	text string
}

// commandScript is a breakpoint's attached command sequence, parsed once at
// add time. Scripts are one level of if/else deep.
type commandScript struct {
	source   string
	commands []command
}

// parseScript splits a semicolon separated command string into a typed
// command sequence.
func parseScript(source string) (*commandScript, error) {
	scr := &commandScript{source: source}

	sawIf := false
	for _, s := range strings.Split(source, ";") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		switch {
		case s == "else":
			if !sawIf {
				return nil, curated.Errorf(MalformedScript, "else without if")
			}
			sawIf = false
			scr.commands = append(scr.commands, command{kind: cmdElse})
		case strings.HasPrefix(s, "if "):
			if sawIf {
				return nil, curated.Errorf(MalformedScript, "nested if")
			}
			sawIf = true
			scr.commands = append(scr.commands, command{
				kind: cmdIf,
				text: strings.TrimSpace(strings.TrimPrefix(s, "if ")),
			})
		default:
			scr.commands = append(scr.commands, command{kind: cmdPlain, text: s})
		}
	}

	if len(scr.commands) == 0 {
		return nil, curated.Errorf(MalformedScript, "empty script")
	}

	return scr, nil
}

// runScript executes a matched breakpoint's command script and returns
// whether execution should stop.
//
// A script does not halt by virtue of having run. Whether the CPU is halted
// once the script finishes is what decides the return value, so a script
// without an explicit halt command makes its breakpoint a silent observation
// point. A script error is an implicit halt.
func (dbg *Debugger) runScript(scr *commandScript) bool {
	if dbg.commands == nil {
		// no command layer attached. treat as a plain halting breakpoint
		return true
	}

	// true while skipping the commands between a failed if and its else
	skipping := false

commands:
	for _, c := range scr.commands {
		switch c.kind {
		case cmdIf:
			v, err := dbg.commands.Evaluate(c.text)
			if err != nil {
				dbg.printStyled(dbg.styles.err, "script aborted: %v", err)
				logger.Logf(logger.Allow, "breakpoint", "script aborted: %v", err)
				return true
			}
			skipping = !v

		case cmdElse:
			if !skipping {
				// the if branch ran. the else branch is the end of the
				// script for this hit
				break commands
			}
			skipping = false

		case cmdPlain:
			if skipping {
				continue
			}
			if err := dbg.commands.RunCommand(c.text); err != nil {
				dbg.printStyled(dbg.styles.err, "script aborted: %v", err)
				logger.Logf(logger.Allow, "breakpoint", "script aborted: %v", err)
				return true
			}
		}
	}

	return dbg.cpu.Halted()
}
