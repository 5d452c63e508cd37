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

package virtualmemory_test

import (
	"testing"

	"github.com/monchamp/gopherstation/hardware/virtualmemory"
	"github.com/monchamp/gopherstation/test"
)

func TestAddressSpacePlacement(t *testing.T) {
	as := virtualmemory.NewAddressSpace()

	// a zero hint places at the bottom of the window
	a := as.Reserve(0, 4096, virtualmemory.ModeReadWrite)
	test.Equate(t, a, uint64(virtualmemory.UserSpaceBase))

	// consecutive reservations stack
	b := as.Reserve(0, 4096, virtualmemory.ModeReadWrite)
	test.Equate(t, b, a+4096)

	// a hint above existing reservations is honoured
	c := as.Reserve(0x3_0000_0000, 4096, virtualmemory.ModeRead)
	test.Equate(t, c, uint64(0x3_0000_0000))

	test.Equate(t, as.Reserved(), 3)
}

func TestAddressSpaceGapReuse(t *testing.T) {
	as := virtualmemory.NewAddressSpace()

	a := as.Reserve(0, 4096, virtualmemory.ModeReadWrite)
	b := as.Reserve(0, 4096, virtualmemory.ModeReadWrite)
	c := as.Reserve(0, 4096, virtualmemory.ModeReadWrite)
	test.Equate(t, c, a+8192)

	// unlike the physical pool, the address space is first-fit: a released
	// range is reused
	as.Release(b)
	d := as.Reserve(0, 4096, virtualmemory.ModeReadWrite)
	test.Equate(t, d, b)
}

func TestAddressSpaceAlignment(t *testing.T) {
	as := virtualmemory.NewAddressSpace()

	a := as.Reserve(0, 100, virtualmemory.ModeReadWrite)
	test.Equate(t, a, uint64(virtualmemory.UserSpaceBase))

	// the next free address is not aligned; the reservation moves up
	b := as.ReserveAligned(0, 4096, virtualmemory.ModeReadWrite, 0x10000)
	test.Equate(t, b, uint64(virtualmemory.UserSpaceBase+0x10000))
}

func TestAddressSpaceWraparound(t *testing.T) {
	as := virtualmemory.NewAddressSpace()

	// a hint too close to the window limit wraps the search back to the
	// base rather than failing
	a := as.Reserve(virtualmemory.UserSpaceLimit-4096, 8192, virtualmemory.ModeReadWrite)
	test.Equate(t, a, uint64(virtualmemory.UserSpaceBase))
}

func TestAddressSpaceFailure(t *testing.T) {
	as := virtualmemory.NewAddressSpace()

	// zero length reservations fail
	test.Equate(t, as.Reserve(0, 0, virtualmemory.ModeReadWrite), uint64(0))

	// a length larger than the window fails
	test.Equate(t, as.Reserve(0, virtualmemory.UserSpaceLimit, virtualmemory.ModeReadWrite), uint64(0))

	// releasing an unknown address is a no-op
	as.Release(0x1234)
	test.Equate(t, as.Reserved(), 0)
}
