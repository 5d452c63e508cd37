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

//go:build linux
// +build linux

package virtualmemory_test

import (
	"testing"
	"unsafe"

	"github.com/monchamp/gopherstation/hardware/virtualmemory"
	"github.com/monchamp/gopherstation/test"
)

func TestHostSpaceReserve(t *testing.T) {
	hs := virtualmemory.NewHostSpace()

	a := hs.Reserve(0, 4096, virtualmemory.ModeReadWrite)
	test.ExpectedSuccess(t, a != 0)

	// the reservation is real host memory. writing the whole range
	// through the returned address proves it is backed end to end
	s := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(a))), 4096)
	for i := range s {
		s[i] = 0x5a
	}
	test.Equate(t, int(s[0]), 0x5a)
	test.Equate(t, int(s[4095]), 0x5a)

	hs.Release(a)
}

func TestHostSpaceAlignment(t *testing.T) {
	hs := virtualmemory.NewHostSpace()

	const alignment = 1 << 20
	a := hs.ReserveAligned(0, 16384, virtualmemory.ModeReadWrite, alignment)
	test.ExpectedSuccess(t, a != 0)
	test.Equate(t, a%alignment, 0)

	// the aligned address sits inside the over-sized backing mapping so
	// the full length is still writable
	s := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(a))), 16384)
	s[0] = 1
	s[16383] = 2
	test.Equate(t, int(s[0]), 1)
	test.Equate(t, int(s[16383]), 2)

	hs.Release(a)
}

func TestHostSpaceRelease(t *testing.T) {
	hs := virtualmemory.NewHostSpace()

	a := hs.Reserve(0, 4096, virtualmemory.ModeNoAccess)
	test.ExpectedSuccess(t, a != 0)
	test.Equate(t, hs.Reserved(), 1)

	hs.Release(a)
	test.Equate(t, hs.Reserved(), 0)

	// releasing an address that is not (or is no longer) reserved is a
	// no-op
	hs.Release(a)
	hs.Release(0xdeadbeef)
}

func TestHostSpaceZeroLength(t *testing.T) {
	hs := virtualmemory.NewHostSpace()
	test.Equate(t, hs.Reserve(0, 0, virtualmemory.ModeReadWrite), 0)
}

func TestHostSpaceUnknownMode(t *testing.T) {
	hs := virtualmemory.NewHostSpace()
	test.ExpectedPanic(t, func() {
		hs.Reserve(0, 4096, virtualmemory.Mode(99))
	})
}
