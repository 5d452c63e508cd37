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

package gpu

import "sync"

// Range is a virtual address range known to the GPU.
type Range struct {
	Vaddr  uint64
	Length uint64
}

// Tracker is a software implementation of the Memory and Run interfaces. It
// records the ranges it is told about and counts drain waits, without any
// real GPU behind it. Useful wherever the memory manager is run without the
// graphics subsystem: tests, the soak mode, etc.
type Tracker struct {
	crit sync.Mutex

	allocated []Range
	freed     []Range
	waits     int
}

// NewTracker is the preferred method of initialisation for the Tracker type.
func NewTracker() *Tracker {
	return &Tracker{}
}

// SetAllocatedRange implements the Memory interface.
func (trk *Tracker) SetAllocatedRange(vaddr uint64, length uint64) {
	trk.crit.Lock()
	defer trk.crit.Unlock()

	trk.allocated = append(trk.allocated, Range{Vaddr: vaddr, Length: length})
}

// Free implements the Memory interface.
func (trk *Tracker) Free(vaddr uint64, length uint64) {
	trk.crit.Lock()
	defer trk.crit.Unlock()

	for i, r := range trk.allocated {
		if r.Vaddr == vaddr && r.Length == length {
			trk.allocated = append(trk.allocated[:i], trk.allocated[i+1:]...)
			break
		}
	}
	trk.freed = append(trk.freed, Range{Vaddr: vaddr, Length: length})
}

// Wait implements the Run interface.
func (trk *Tracker) Wait() {
	trk.crit.Lock()
	defer trk.crit.Unlock()

	trk.waits++
}

// Allocated returns a copy of the ranges currently registered with the
// tracker.
func (trk *Tracker) Allocated() []Range {
	trk.crit.Lock()
	defer trk.crit.Unlock()

	c := make([]Range, len(trk.allocated))
	copy(c, trk.allocated)
	return c
}

// Freed returns a copy of the ranges that have been freed.
func (trk *Tracker) Freed() []Range {
	trk.crit.Lock()
	defer trk.crit.Unlock()

	c := make([]Range, len(trk.freed))
	copy(c, trk.freed)
	return c
}

// Waits returns the number of times the drain barrier has been waited on.
func (trk *Tracker) Waits() int {
	trk.crit.Lock()
	defer trk.crit.Unlock()

	return trk.waits
}
