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

// Package debugger is the glue that binds the debugging subsystems together
// into a session. A Debugger owns the breakpoint lists, the execution
// history, the symbol table and the disassembler; the emulated CPU and bus
// call into it and the host command layer calls down through it.
//
// The core is single threaded and synchronous. The CPU calls CheckExec once
// per traced instruction and the bus calls CheckRead/CheckWrite when a
// trapped address is touched, all from inside the CPU's own execution loop.
// These checks never block and never allocate once tracking is configured.
// Execution driven by the debugger itself (StepN, RunTo) happens in bounded
// bursts so a surrounding event loop stays responsive.
//
// Breakpoints come in three kinds, exec, read and write, and may carry a
// command script run on every match. A script decides whether the machine
// stops by whether it leaves the CPU halted, so a script with no halt
// command turns its breakpoint into a silent observation point.
package debugger
