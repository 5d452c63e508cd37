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

// Package gpu defines the boundary between the kernel memory manager and the
// GPU subsystem. The memory manager only needs to know whether a mapped
// region is visible to the GPU and, if so, how to retire the GPU-side buffer
// when the region goes away. The real graphics implementation lives behind
// the Memory and Run interfaces.
package gpu

// MemoryMode indicates whether a mapped region is visible to the GPU and
// with what access rights.
type MemoryMode int

// List of valid MemoryMode values.
const (
	MemoryNoAccess MemoryMode = iota
	MemoryReadWrite
)

func (mode MemoryMode) String() string {
	switch mode {
	case MemoryNoAccess:
		return "NoAccess"
	case MemoryReadWrite:
		return "ReadWrite"
	}
	return "unknown"
}

// Memory is the interface to the GPU memory subsystem. SetAllocatedRange
// tells the GPU that a virtual range now backs GPU-visible memory. Free
// retires the GPU-side buffer for a range. The implementation owns whatever
// graphics context it needs to do this.
//
// Callers must wait on the Run barrier before calling Free. The GPU may
// still be referencing the range until then.
type Memory interface {
	SetAllocatedRange(vaddr uint64, length uint64)
	Free(vaddr uint64, length uint64)
}

// Run is the drain barrier for the GPU command queue. Wait blocks until all
// previously submitted GPU work has finished.
type Run interface {
	Wait()
}
