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

package memory_test

import (
	"testing"

	"github.com/monchamp/gopherstation/hardware/gpu"
	"github.com/monchamp/gopherstation/hardware/memory"
	"github.com/monchamp/gopherstation/hardware/virtualmemory"
	"github.com/monchamp/gopherstation/test"
)

func TestFlexibleMapUnmap(t *testing.T) {
	flex := memory.NewFlexibleMemory()

	ok := flex.Map(0x2_0000_0000, 16384, 0x03, virtualmemory.ModeReadWrite, gpu.MemoryNoAccess)
	test.ExpectedSuccess(t, ok)

	// unmap requires the exact extent; the record survives a mismatch
	_, ok = flex.Unmap(0x2_0000_0000, 4096)
	test.ExpectedFailure(t, ok)

	m, ok := flex.Find(0x2_0000_0000)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, m.Size, uint64(16384))

	gpuMode, ok := flex.Unmap(0x2_0000_0000, 16384)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, gpuMode == gpu.MemoryNoAccess, true)

	// the record is the mapping. once removed there is nothing to find
	_, ok = flex.Find(0x2_0000_0000)
	test.ExpectedFailure(t, ok)
}

func TestFlexibleOverlapAccepted(t *testing.T) {
	flex := memory.NewFlexibleMemory()

	// overlapping and duplicate mappings are accepted silently
	test.ExpectedSuccess(t, flex.Map(0x2_0000_0000, 8192, 0x01, virtualmemory.ModeRead, gpu.MemoryNoAccess))
	test.ExpectedSuccess(t, flex.Map(0x2_0000_0000, 8192, 0x02, virtualmemory.ModeReadWrite, gpu.MemoryNoAccess))
	test.ExpectedSuccess(t, flex.Map(0x2_0000_1000, 8192, 0x05, virtualmemory.ModeExecuteRead, gpu.MemoryNoAccess))

	// first-inserted record wins the find
	m, ok := flex.Find(0x2_0000_1100)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, m.Prot, 0x01)
	test.Equate(t, m.Base, uint64(0x2_0000_0000))

	// removing the first record exposes the duplicate underneath
	_, ok = flex.Unmap(0x2_0000_0000, 8192)
	test.ExpectedSuccess(t, ok)

	m, ok = flex.Find(0x2_0000_1100)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, m.Prot, 0x02)
}

func TestFlexibleFindExtent(t *testing.T) {
	flex := memory.NewFlexibleMemory()

	flex.Map(0x2_0000_0000, 4096, 0x03, virtualmemory.ModeReadWrite, gpu.MemoryNoAccess)

	// first and last addresses of the range
	_, ok := flex.Find(0x2_0000_0000)
	test.ExpectedSuccess(t, ok)
	_, ok = flex.Find(0x2_0000_0fff)
	test.ExpectedSuccess(t, ok)

	// one past the end
	_, ok = flex.Find(0x2_0000_1000)
	test.ExpectedFailure(t, ok)
}
