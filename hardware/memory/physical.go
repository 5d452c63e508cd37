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

package memory

import (
	"sync"

	"github.com/monchamp/gopherstation/hardware/gpu"
	"github.com/monchamp/gopherstation/hardware/virtualmemory"
)

// PhysicalMemorySize is the size in bytes of the emulated physical pool.
// The size is advisory. Alloc() never checks allocations against it, only
// against the caller's search range. The reference system behaves the same
// way and guest programs depend on the placement rule, so the bound is left
// unenforced here too.
const PhysicalMemorySize = 5376 * 1024 * 1024

// PhysicalBlock records a single direct-memory allocation. StartAddr and
// Size describe the physical range. MapVaddr and MapSize describe the
// current virtual mapping of that range; both are zero when the block is
// unmapped. The block is never in a half-mapped state.
type PhysicalBlock struct {
	StartAddr uint64
	Size      uint64
	MapVaddr  uint64
	MapSize   uint64
	Prot      int
	Mode      virtualmemory.Mode
	GpuMode   gpu.MemoryMode
}

// PhysicalMemory tracks the blocks carved out of the emulated physical
// pool. All operations are serialised behind a single lock; lookups are
// linear scans in insertion order, which is fine for the small block counts
// guest programs produce.
type PhysicalMemory struct {
	crit      sync.Mutex
	allocated []PhysicalBlock
}

// NewPhysicalMemory is the preferred method of initialisation for the
// PhysicalMemory type.
func NewPhysicalMemory() *PhysicalMemory {
	return &PhysicalMemory{}
}

func alignPos(pos uint64, align uint64) uint64 {
	if align == 0 {
		return pos
	}
	return (pos + (align - 1)) &^ (align - 1)
}

// Alloc finds a physical address for a new block of the required length.
//
// Placement is a watermark: the new block goes above the highest
// start+size of all live blocks, rounded up to the alignment. Space freed
// below a still-higher block is not reclaimed. This is not an oversight; a
// gap-aware allocator would hand out different addresses than the system
// being emulated.
//
// The aligned watermark must lie inside [searchStart, searchEnd-length] or
// the allocation fails.
func (phys *PhysicalMemory) Alloc(searchStart uint64, searchEnd uint64, length uint64, alignment uint64) (uint64, bool) {
	phys.crit.Lock()
	defer phys.crit.Unlock()

	var freePos uint64
	for _, b := range phys.allocated {
		if n := b.StartAddr + b.Size; n > freePos {
			freePos = n
		}
	}

	freePos = alignPos(freePos, alignment)

	if freePos < searchStart || freePos+length > searchEnd {
		return 0, false
	}

	phys.allocated = append(phys.allocated, PhysicalBlock{
		StartAddr: freePos,
		Size:      length,
	})

	return freePos, true
}

// Release removes the block matching the start address and length exactly.
// The returned Unmapping carries the block's virtual-mapping fields, which
// are now orphaned; the caller is responsible for tearing the mapping down.
func (phys *PhysicalMemory) Release(start uint64, length uint64) (Unmapping, bool) {
	phys.crit.Lock()
	defer phys.crit.Unlock()

	for i, b := range phys.allocated {
		if b.StartAddr == start && b.Size == length {
			u := Unmapping{
				Vaddr:   b.MapVaddr,
				Size:    b.MapSize,
				GpuMode: b.GpuMode,
			}
			phys.allocated = append(phys.allocated[:i], phys.allocated[i+1:]...)
			return u, true
		}
	}

	return Unmapping{}, false
}

// Map records a virtual mapping against the block whose physical range
// contains physAddr. Fails if no block contains physAddr or if the block is
// already mapped. The mapping fields are recorded verbatim; in particular,
// length is not checked against the block's size.
func (phys *PhysicalMemory) Map(vaddr uint64, physAddr uint64, length uint64, prot int, mode virtualmemory.Mode, gpuMode gpu.MemoryMode) bool {
	phys.crit.Lock()
	defer phys.crit.Unlock()

	for i := range phys.allocated {
		b := &phys.allocated[i]
		if physAddr >= b.StartAddr && physAddr < b.StartAddr+b.Size {
			if b.MapVaddr != 0 || b.MapSize != 0 {
				return false
			}

			b.MapVaddr = vaddr
			b.MapSize = length
			b.Prot = prot
			b.Mode = mode
			b.GpuMode = gpuMode

			return true
		}
	}

	return false
}

// Unmap resets the mapping fields of the block whose mapping matches vaddr
// and size exactly. Returns the GPU memory mode the mapping had.
func (phys *PhysicalMemory) Unmap(vaddr uint64, size uint64) (gpu.MemoryMode, bool) {
	phys.crit.Lock()
	defer phys.crit.Unlock()

	for i := range phys.allocated {
		b := &phys.allocated[i]
		if b.MapVaddr == vaddr && b.MapSize == size {
			gpuMode := b.GpuMode

			b.MapVaddr = 0
			b.MapSize = 0
			b.Prot = 0
			b.Mode = virtualmemory.ModeNoAccess
			b.GpuMode = gpu.MemoryNoAccess

			return gpuMode, true
		}
	}

	return gpu.MemoryNoAccess, false
}

// Find returns the mapping of the first block, in insertion order, whose
// mapped virtual range contains vaddr.
func (phys *PhysicalMemory) Find(vaddr uint64) (Mapping, bool) {
	phys.crit.Lock()
	defer phys.crit.Unlock()

	for _, b := range phys.allocated {
		if vaddr >= b.MapVaddr && vaddr < b.MapVaddr+b.MapSize {
			return Mapping{
				Base:    b.MapVaddr,
				Size:    b.MapSize,
				Prot:    b.Prot,
				Mode:    b.Mode,
				GpuMode: b.GpuMode,
			}, true
		}
	}

	return Mapping{}, false
}

// snapshot returns a copy of the block table. for diagnostics only.
func (phys *PhysicalMemory) snapshot() []PhysicalBlock {
	phys.crit.Lock()
	defer phys.crit.Unlock()

	c := make([]PhysicalBlock, len(phys.allocated))
	copy(c, phys.allocated)
	return c
}
