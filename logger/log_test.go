// This file is part of GopherStation.
//
// GopherStation is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherStation is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherStation.  If not, see <https://www.gnu.org/licenses/>.

package logger_test

import (
	"bytes"
	"testing"

	"github.com/monchamp/gopherstation/logger"
	"github.com/monchamp/gopherstation/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()

	b := &bytes.Buffer{}
	logger.Log(logger.Allow, "test", "this is a test")
	logger.Write(b)
	test.Equate(t, b.String(), "test: this is a test\n")

	b.Reset()
	logger.Logf(logger.Allow, "test", "this is test %d", 2)
	logger.Tail(b, 1)
	test.Equate(t, b.String(), "test: this is test 2\n")
}

func TestLoggerRepeatFolding(t *testing.T) {
	logger.Clear()

	b := &bytes.Buffer{}
	logger.Log(logger.Allow, "test", "same entry")
	logger.Log(logger.Allow, "test", "same entry")
	logger.Log(logger.Allow, "test", "same entry")
	logger.Write(b)
	test.Equate(t, b.String(), "test: same entry (repeat x3)\n")
}

func TestLoggerWriteRecent(t *testing.T) {
	logger.Clear()

	b := &bytes.Buffer{}
	logger.Log(logger.Allow, "test", "old entry")
	logger.WriteRecent(b)
	test.Equate(t, b.String(), "test: old entry\n")

	// a second call writes nothing more
	b.Reset()
	logger.WriteRecent(b)
	test.Equate(t, b.String(), "")

	b.Reset()
	logger.Log(logger.Allow, "test", "new entry")
	logger.WriteRecent(b)
	test.Equate(t, b.String(), "test: new entry\n")
}
