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

package logger_test

import (
	"strings"
	"testing"

	"github.com/gopher86/gopher86/logger"
	"github.com/gopher86/gopher86/test"
)

func TestLog(t *testing.T) {
	l := logger.NewLogger(100)

	b := strings.Builder{}
	l.Write(&b)
	test.ExpectEquality(t, b.String(), "")

	l.Log(logger.Allow, "test", "this is a test")
	b.Reset()
	l.Write(&b)
	test.ExpectEquality(t, b.String(), "test: this is a test\n")

	l.Logf(logger.Allow, "test", "this is a %s", "formatted test")
	b.Reset()
	l.Write(&b)
	test.ExpectEquality(t, b.String(), "test: this is a test\ntest: this is a formatted test\n")

	l.Clear()
	b.Reset()
	l.Write(&b)
	test.ExpectEquality(t, b.String(), "")
}

func TestRepeatCollapse(t *testing.T) {
	l := logger.NewLogger(100)

	l.Log(logger.Allow, "test", "the same entry")
	l.Log(logger.Allow, "test", "the same entry")
	l.Log(logger.Allow, "test", "the same entry")

	b := strings.Builder{}
	l.Write(&b)
	test.ExpectEquality(t, b.String(), "test: the same entry (repeat x3)\n")

	l.BorrowLog(func(entries []logger.Entry) {
		test.ExpectEquality(t, len(entries), 1)
		test.ExpectEquality(t, entries[0].Repeated, 2)
	})
}

func TestTail(t *testing.T) {
	l := logger.NewLogger(100)

	l.Log(logger.Allow, "test", "one")
	l.Log(logger.Allow, "test", "two")
	l.Log(logger.Allow, "test", "three")

	b := strings.Builder{}
	l.Tail(&b, 2)
	test.ExpectEquality(t, b.String(), "test: two\ntest: three\n")

	// number larger than the log length is capped
	b.Reset()
	l.Tail(&b, 10)
	test.ExpectEquality(t, b.String(), "test: one\ntest: two\ntest: three\n")
}

func TestMaxEntries(t *testing.T) {
	l := logger.NewLogger(2)

	l.Log(logger.Allow, "test", "one")
	l.Log(logger.Allow, "test", "two")
	l.Log(logger.Allow, "test", "three")

	b := strings.Builder{}
	l.Write(&b)
	test.ExpectEquality(t, b.String(), "test: two\ntest: three\n")
}

func TestWriteRecent(t *testing.T) {
	l := logger.NewLogger(100)

	l.Log(logger.Allow, "test", "one")

	b := strings.Builder{}
	l.WriteRecent(&b)
	test.ExpectEquality(t, b.String(), "test: one\n")

	// nothing new to report
	b.Reset()
	l.WriteRecent(&b)
	test.ExpectEquality(t, b.String(), "")

	l.Log(logger.Allow, "test", "two")
	b.Reset()
	l.WriteRecent(&b)
	test.ExpectEquality(t, b.String(), "test: two\n")
}
