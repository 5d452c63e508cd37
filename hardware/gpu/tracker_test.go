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

package gpu_test

import (
	"testing"

	"github.com/monchamp/gopherstation/hardware/gpu"
	"github.com/monchamp/gopherstation/test"
)

func TestTracker(t *testing.T) {
	trk := gpu.NewTracker()

	trk.SetAllocatedRange(0x2_0000_0000, 4096)
	trk.SetAllocatedRange(0x2_0000_1000, 8192)
	test.Equate(t, len(trk.Allocated()), 2)

	trk.Wait()
	trk.Free(0x2_0000_0000, 4096)
	test.Equate(t, trk.Waits(), 1)
	test.Equate(t, len(trk.Allocated()), 1)
	test.Equate(t, len(trk.Freed()), 1)
	test.Equate(t, trk.Freed()[0].Vaddr, uint64(0x2_0000_0000))

	// freeing an unknown range is still recorded as freed
	trk.Free(0x3_0000_0000, 4096)
	test.Equate(t, len(trk.Allocated()), 1)
	test.Equate(t, len(trk.Freed()), 2)
}
