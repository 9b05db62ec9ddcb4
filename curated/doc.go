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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It takes a
// formatting pattern and placeholder values and returns an error. The Is()
// function checks whether an error was created by Errorf() with a specific
// pattern. The pattern strings used throughout this project are declared as
// constants alongside the package that raises them. For example:
//
//	if curated.Is(err, dbgmem.InvalidAddress) {
//		// recoverable. report and continue
//	}
//
// The Has() function is similar to Is() but checks whether the pattern occurs
// anywhere in the error chain rather than just at the head.
//
// The IsAny() function answers whether the error was created by Errorf() at
// all. We can think of the difference between curated and uncurated errors as
// being the difference between 'expected' and 'unexpected' failures.
//
// The Error() implementation normalises the error chain by removing duplicate
// adjacent parts of the message. The practical advantage is that it relieves
// the pressure of deciding when and how to wrap errors as they move up the
// call chain.
package curated
