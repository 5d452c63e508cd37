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

package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/monchamp/gopherstation/hardware/gpu"
	"github.com/monchamp/gopherstation/hardware/memory"
	"github.com/monchamp/gopherstation/hardware/virtualmemory"
)

// the emulated system's page size. the soak works in whole pages like a
// well-behaved guest would.
const pageSize = 16384

type directBlock struct {
	phys  uint64
	size  uint64
	vaddr uint64 // zero when unmapped
}

type flexBlock struct {
	vaddr uint64
	size  uint64
}

// reserver is the virtual memory substrate the soak runs over. both
// AddressSpace and HostSpace satisfy it; the live reservation count appears
// in the final report.
type reserver interface {
	virtualmemory.Reserver
	Reserved() int
}

// soak drives randomised guest-like syscall sequences against a fresh
// memory manager and reports what happened. Any sequencing bug in the
// manager shows up as a panic; resource-exhaustion failures are counted and
// reported but are part of normal operation.
func soak(output io.Writer, rnd *rand.Rand, ops int, graphFile string, res reserver) error {
	trk := gpu.NewTracker()
	mem := memory.NewMemory(res, trk, trk)

	var direct []directBlock
	var flexible []flexBlock

	counts := make(map[string]int)
	failures := 0

	// guest protection codes for direct mappings; the last two are the
	// GPU-visible codes
	directProts := []int{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x32, 0x33}

	for i := 0; i < ops; i++ {
		size := uint64(1+rnd.Intn(64)) * pageSize

		switch rnd.Intn(10) {
		case 0, 1:
			counts["AllocateDirectMemory"]++
			phys, err := mem.AllocateDirectMemory(0, int64(mem.DirectMemorySize()), size, pageSize, 0)
			if err != nil {
				failures++
				continue
			}
			direct = append(direct, directBlock{phys: phys, size: size})

		case 2, 3:
			counts["MapDirectMemory"]++
			b := pickUnmapped(rnd, direct)
			if b == nil {
				continue
			}
			prot := directProts[rnd.Intn(len(directProts))]
			vaddr, err := mem.MapDirectMemory(0, b.size, prot, 0, int64(b.phys), pageSize)
			if err != nil {
				failures++
				continue
			}
			b.vaddr = vaddr

		case 4:
			counts["ReleaseDirectMemory"]++
			if len(direct) == 0 {
				continue
			}
			n := rnd.Intn(len(direct))
			if err := mem.ReleaseDirectMemory(int64(direct[n].phys), direct[n].size); err != nil {
				return err
			}
			direct = append(direct[:n], direct[n+1:]...)

		case 5, 6:
			counts["MapNamedFlexibleMemory"]++
			name := fmt.Sprintf("anon:soak:%d", i)
			vaddr, err := mem.MapNamedFlexibleMemory(0, size, rnd.Intn(8), 0, name)
			if err != nil {
				failures++
				continue
			}
			flexible = append(flexible, flexBlock{vaddr: vaddr, size: size})

		case 7, 8:
			counts["Munmap"]++
			// unmap either a mapped direct block or a flexible mapping
			if rnd.Intn(2) == 0 {
				b := pickMapped(rnd, direct)
				if b == nil {
					continue
				}
				if err := mem.Munmap(b.vaddr, int64(b.size)); err != nil {
					return err
				}
				b.vaddr = 0
			} else {
				if len(flexible) == 0 {
					continue
				}
				n := rnd.Intn(len(flexible))
				if err := mem.Munmap(flexible[n].vaddr, int64(flexible[n].size)); err != nil {
					return err
				}
				flexible = append(flexible[:n], flexible[n+1:]...)
			}

		case 9:
			counts["QueryMemoryProtection"]++
			b := pickMapped(rnd, direct)
			if b == nil {
				continue
			}
			p, err := mem.QueryMemoryProtection(b.vaddr + rnd.Uint64()%b.size)
			if err != nil {
				return err
			}
			if p.Start != b.vaddr {
				return fmt.Errorf("soak: query returned wrong region (%#x, wanted %#x)", p.Start, b.vaddr)
			}
		}
	}

	fmt.Fprintf(output, "%d syscalls run, %d recoverable failures\n", ops, failures)
	for op, n := range counts {
		fmt.Fprintf(output, "  %-24s %d\n", op, n)
	}
	fmt.Fprintf(output, "live: %d direct blocks, %d flexible mappings, %d reservations\n",
		len(direct), len(flexible), res.Reserved())
	fmt.Fprintf(output, "gpu: %d registered ranges, %d freed, %d queue drains\n",
		len(trk.Allocated()), len(trk.Freed()), trk.Waits())

	if graphFile != "" {
		f, err := os.Create(graphFile)
		if err != nil {
			return err
		}
		defer f.Close()
		mem.WriteGraph(f)
		fmt.Fprintf(output, "block-table graph written to %s\n", graphFile)
	}

	return nil
}

func pickUnmapped(rnd *rand.Rand, direct []directBlock) *directBlock {
	var c []*directBlock
	for i := range direct {
		if direct[i].vaddr == 0 {
			c = append(c, &direct[i])
		}
	}
	if len(c) == 0 {
		return nil
	}
	return c[rnd.Intn(len(c))]
}

func pickMapped(rnd *rand.Rand, direct []directBlock) *directBlock {
	var c []*directBlock
	for i := range direct {
		if direct[i].vaddr != 0 {
			c = append(c, &direct[i])
		}
	}
	if len(c) == 0 {
		return nil
	}
	return c[rnd.Intn(len(c))]
}
