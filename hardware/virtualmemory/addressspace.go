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

package virtualmemory

import "sync"

// The simulated user-space window. The base matches where the emulated
// system places user mappings; the limit is the top of the canonical 48-bit
// address space.
const (
	UserSpaceBase  = 0x2_0000_0000
	UserSpaceLimit = 0x1_0000_0000_0000
)

type reservation struct {
	vaddr  uint64
	length uint64
}

// AddressSpace is a bookkeeping implementation of the Reserver interface.
// No real memory is involved; addresses are placed first-fit inside a
// simulated user-space window. Placement is deterministic, which makes this
// the implementation of choice for testing and for the soak mode.
type AddressSpace struct {
	crit sync.Mutex

	// reservations ordered by vaddr
	reservations []reservation
}

// NewAddressSpace is the preferred method of initialisation for the
// AddressSpace type.
func NewAddressSpace() *AddressSpace {
	return &AddressSpace{}
}

func alignUp(v uint64, align uint64) uint64 {
	if align == 0 {
		return v
	}
	return (v + (align - 1)) &^ (align - 1)
}

// place finds the lowest gap of the required length at or above the from
// address. returns zero if the window is exhausted.
func (as *AddressSpace) place(from uint64, length uint64, alignment uint64) uint64 {
	candidate := alignUp(from, alignment)

	for _, r := range as.reservations {
		if candidate+length <= r.vaddr {
			break
		}
		if r.vaddr+r.length > candidate {
			candidate = alignUp(r.vaddr+r.length, alignment)
		}
	}

	if candidate+length > UserSpaceLimit {
		return 0
	}

	return candidate
}

// Reserve implements the Reserver interface.
func (as *AddressSpace) Reserve(hint uint64, length uint64, mode Mode) uint64 {
	return as.ReserveAligned(hint, length, mode, 0)
}

// ReserveAligned implements the Reserver interface. If no gap can be found
// at or above the hint the search wraps around to the base of the window
// before giving up.
func (as *AddressSpace) ReserveAligned(hint uint64, length uint64, mode Mode, alignment uint64) uint64 {
	if length == 0 {
		return 0
	}

	as.crit.Lock()
	defer as.crit.Unlock()

	if hint < UserSpaceBase {
		hint = UserSpaceBase
	}

	vaddr := as.place(hint, length, alignment)
	if vaddr == 0 && hint > UserSpaceBase {
		vaddr = as.place(UserSpaceBase, length, alignment)
	}
	if vaddr == 0 {
		return 0
	}

	// insert new reservation, keeping the list ordered by vaddr
	i := 0
	for i < len(as.reservations) && as.reservations[i].vaddr < vaddr {
		i++
	}
	as.reservations = append(as.reservations, reservation{})
	copy(as.reservations[i+1:], as.reservations[i:])
	as.reservations[i] = reservation{vaddr: vaddr, length: length}

	return vaddr
}

// Release implements the Reserver interface. Releasing an address that was
// never reserved is a no-op.
func (as *AddressSpace) Release(vaddr uint64) {
	as.crit.Lock()
	defer as.crit.Unlock()

	for i, r := range as.reservations {
		if r.vaddr == vaddr {
			as.reservations = append(as.reservations[:i], as.reservations[i+1:]...)
			return
		}
	}
}

// Reserved returns the number of live reservations.
func (as *AddressSpace) Reserved() int {
	as.crit.Lock()
	defer as.crit.Unlock()

	return len(as.reservations)
}
