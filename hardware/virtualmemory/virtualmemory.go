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

// Package virtualmemory is the virtual-address reservation substrate for the
// emulated kernel. The memory manager asks a Reserver for virtual ranges and
// gives them back; it does not care where the ranges come from. Two
// implementations are provided: AddressSpace, which is pure bookkeeping over
// a simulated user-space window, and HostSpace (linux only), which backs
// each reservation with an anonymous host mapping.
package virtualmemory

// Mode is the page access mode applied to a virtual mapping.
type Mode int

// List of valid Mode values.
const (
	ModeNoAccess Mode = iota
	ModeRead
	ModeReadWrite
	ModeExecute
	ModeExecuteRead
	ModeExecuteReadWrite
)

func (mode Mode) String() string {
	switch mode {
	case ModeNoAccess:
		return "NoAccess"
	case ModeRead:
		return "Read"
	case ModeReadWrite:
		return "ReadWrite"
	case ModeExecute:
		return "Execute"
	case ModeExecuteRead:
		return "ExecuteRead"
	case ModeExecuteReadWrite:
		return "ExecuteReadWrite"
	}
	return "unknown"
}

// Reserver reserves and releases ranges of the process's virtual address
// space. The hint is the address the caller would like but implementations
// are free to place the range elsewhere. A returned address of zero means
// the reservation failed.
//
// Release takes only the address returned by a previous reservation. The
// reserver remembers the length itself.
type Reserver interface {
	Reserve(hint uint64, length uint64, mode Mode) uint64
	ReserveAligned(hint uint64, length uint64, mode Mode, alignment uint64) uint64
	Release(vaddr uint64)
}
