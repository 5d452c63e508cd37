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

package virtualmemory

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// HostSpace is a Reserver implementation that backs every reservation with
// an anonymous private mapping in the host process. Guest loads and stores
// through the emulated CPU then hit real memory with real page protection.
//
// The hint is advisory and ignored; the host kernel chooses the address.
// Alignment is satisfied by over-mapping and returning an aligned address
// inside the mapping.
type HostSpace struct {
	crit sync.Mutex

	// aligned address returned to the caller -> backing mapping
	mappings map[uint64][]byte
}

// NewHostSpace is the preferred method of initialisation for the HostSpace
// type.
func NewHostSpace() *HostSpace {
	return &HostSpace{
		mappings: make(map[uint64][]byte),
	}
}

func hostProt(mode Mode) int {
	switch mode {
	case ModeNoAccess:
		return unix.PROT_NONE
	case ModeRead:
		return unix.PROT_READ
	case ModeReadWrite:
		return unix.PROT_READ | unix.PROT_WRITE
	case ModeExecute:
		return unix.PROT_EXEC
	case ModeExecuteRead:
		return unix.PROT_EXEC | unix.PROT_READ
	case ModeExecuteReadWrite:
		return unix.PROT_EXEC | unix.PROT_READ | unix.PROT_WRITE
	}

	panic(fmt.Sprintf("virtualmemory: unknown mode (%d)", int(mode)))
}

// Reserve implements the Reserver interface.
func (hs *HostSpace) Reserve(hint uint64, length uint64, mode Mode) uint64 {
	return hs.ReserveAligned(hint, length, mode, 0)
}

// ReserveAligned implements the Reserver interface.
func (hs *HostSpace) ReserveAligned(hint uint64, length uint64, mode Mode, alignment uint64) uint64 {
	if length == 0 {
		return 0
	}

	m, err := unix.Mmap(-1, 0, int(length+alignment), hostProt(mode),
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return 0
	}

	vaddr := alignUp(uint64(uintptr(unsafe.Pointer(&m[0]))), alignment)

	hs.crit.Lock()
	defer hs.crit.Unlock()
	hs.mappings[vaddr] = m

	return vaddr
}

// Reserved returns the number of live reservations.
func (hs *HostSpace) Reserved() int {
	hs.crit.Lock()
	defer hs.crit.Unlock()
	return len(hs.mappings)
}

// Release implements the Reserver interface. Releasing an address that was
// never reserved is a no-op.
func (hs *HostSpace) Release(vaddr uint64) {
	hs.crit.Lock()
	defer hs.crit.Unlock()

	if m, ok := hs.mappings[vaddr]; ok {
		_ = unix.Munmap(m)
		delete(hs.mappings, vaddr)
	}
}
