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
	"github.com/monchamp/gopherstation/hardware/gpu"
	"github.com/monchamp/gopherstation/hardware/virtualmemory"
)

// Mapping describes an active virtual mapping, as returned by the Find
// functions of the two block tables.
type Mapping struct {
	Base    uint64
	Size    uint64
	Prot    int
	Mode    virtualmemory.Mode
	GpuMode gpu.MemoryMode
}

// Unmapping carries the orphaned virtual-mapping fields of a released
// physical block. The caller uses it to tear the mapping down.
type Unmapping struct {
	Vaddr   uint64
	Size    uint64
	GpuMode gpu.MemoryMode
}

// Protection is the result of the QueryMemoryProtection syscall. End is the
// last address of the region, inclusive.
type Protection struct {
	Start uint64
	End   uint64
	Prot  int
}
