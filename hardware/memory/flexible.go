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

// FlexibleBlock records a single anonymous mapping. There is no physical
// identity; the existence of the record is the mapping.
type FlexibleBlock struct {
	MapVaddr uint64
	MapSize  uint64
	Prot     int
	Mode     virtualmemory.Mode
	GpuMode  gpu.MemoryMode
}

// FlexibleMemory tracks anonymous mappings. No capacity bound and no
// physical backing. Like PhysicalMemory, all operations are serialised
// behind a single lock and lookups are linear scans in insertion order.
type FlexibleMemory struct {
	crit      sync.Mutex
	allocated []FlexibleBlock
}

// NewFlexibleMemory is the preferred method of initialisation for the
// FlexibleMemory type.
func NewFlexibleMemory() *FlexibleMemory {
	return &FlexibleMemory{}
}

// Map appends a new mapping record. There is no check for overlap with
// existing records; anonymous mappings are the caller's to manage and the
// reference system accepts duplicates silently.
func (flex *FlexibleMemory) Map(vaddr uint64, length uint64, prot int, mode virtualmemory.Mode, gpuMode gpu.MemoryMode) bool {
	flex.crit.Lock()
	defer flex.crit.Unlock()

	flex.allocated = append(flex.allocated, FlexibleBlock{
		MapVaddr: vaddr,
		MapSize:  length,
		Prot:     prot,
		Mode:     mode,
		GpuMode:  gpuMode,
	})

	return true
}

// Unmap removes the record whose mapping matches vaddr and size exactly.
// Returns the GPU memory mode the mapping had.
func (flex *FlexibleMemory) Unmap(vaddr uint64, size uint64) (gpu.MemoryMode, bool) {
	flex.crit.Lock()
	defer flex.crit.Unlock()

	for i, b := range flex.allocated {
		if b.MapVaddr == vaddr && b.MapSize == size {
			gpuMode := b.GpuMode
			flex.allocated = append(flex.allocated[:i], flex.allocated[i+1:]...)
			return gpuMode, true
		}
	}

	return gpu.MemoryNoAccess, false
}

// Find returns the mapping of the first record, in insertion order, whose
// virtual range contains vaddr.
func (flex *FlexibleMemory) Find(vaddr uint64) (Mapping, bool) {
	flex.crit.Lock()
	defer flex.crit.Unlock()

	for _, b := range flex.allocated {
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

// snapshot returns a copy of the mapping table. for diagnostics only.
func (flex *FlexibleMemory) snapshot() []FlexibleBlock {
	flex.crit.Lock()
	defer flex.crit.Unlock()

	c := make([]FlexibleBlock, len(flex.allocated))
	copy(c, flex.allocated)
	return c
}
