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
	"fmt"

	"github.com/monchamp/gopherstation/hardware/gpu"
	"github.com/monchamp/gopherstation/hardware/virtualmemory"
)

// decodeProt translates a guest protection code into a page access mode and
// a GPU memory mode. The gpuCodes argument enables the two codes that tag a
// region GPU-visible; they are only meaningful when mapping direct memory.
//
// An unrecognised code panics. It means the decode table is incomplete for
// a real guest workload, which is not something to limp past.
func decodeProt(prot int, gpuCodes bool) (virtualmemory.Mode, gpu.MemoryMode) {
	switch prot {
	case 0x00:
		return virtualmemory.ModeNoAccess, gpu.MemoryNoAccess
	case 0x01:
		return virtualmemory.ModeRead, gpu.MemoryNoAccess
	case 0x02, 0x03:
		return virtualmemory.ModeReadWrite, gpu.MemoryNoAccess
	case 0x04:
		return virtualmemory.ModeExecute, gpu.MemoryNoAccess
	case 0x05:
		return virtualmemory.ModeExecuteRead, gpu.MemoryNoAccess
	case 0x06, 0x07:
		return virtualmemory.ModeExecuteReadWrite, gpu.MemoryNoAccess
	case 0x32, 0x33:
		if gpuCodes {
			return virtualmemory.ModeReadWrite, gpu.MemoryReadWrite
		}
	}

	panic(fmt.Sprintf("memory: unknown protection code (%#02x)", prot))
}
