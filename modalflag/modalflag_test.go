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

package modalflag_test

import (
	"testing"

	"github.com/monchamp/gopherstation/modalflag"
	"github.com/monchamp/gopherstation/test"
)

func TestDefaultSubMode(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{})
	md.AddSubModes("RUN", "VERSION")

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, p == modalflag.ParseContinue, true)
	test.Equate(t, md.Mode(), "RUN")
}

func TestSelectedSubMode(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{"version"})
	md.AddSubModes("RUN", "VERSION")

	_, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.Mode(), "VERSION")
	test.Equate(t, md.Path(), "VERSION")
}

func TestSubModeFlags(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{"run", "-cycles", "100", "leftover"})
	md.AddSubModes("RUN", "VERSION")

	_, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.Mode(), "RUN")

	md.NewMode()
	cycles := md.AddInt("cycles", 10, "number of cycles")

	_, err = md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, *cycles, 100)
	test.Equate(t, len(md.RemainingArgs()), 1)
	test.Equate(t, md.RemainingArgs()[0], "leftover")
}

func TestFlagBeforeSubMode(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{"-top", "run", "-cycles", "100"})
	top := md.AddBool("top", false, "top-level flag")
	md.AddSubModes("RUN", "VERSION")

	_, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, *top, true)
	test.Equate(t, md.Mode(), "RUN")

	// the second-level parse must start after the sub-mode argument, not
	// re-read it in place of the top-level flag
	md.NewMode()
	cycles := md.AddInt("cycles", 10, "number of cycles")

	_, err = md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, *cycles, 100)
	test.Equate(t, len(md.RemainingArgs()), 0)
}

func TestUnrecognisedFlag(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{"-no-such-flag"})

	p, err := md.Parse()
	test.ExpectedFailure(t, err)
	test.Equate(t, p == modalflag.ParseError, true)
}
