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

	"github.com/monchamp/gopherstation/curated"
	"github.com/monchamp/gopherstation/hardware/gpu"
	"github.com/monchamp/gopherstation/hardware/virtualmemory"
	"github.com/monchamp/gopherstation/logger"
)

// Memory is the guest kernel's memory manager. It owns the two block tables
// and holds the collaborators needed to back them with real address space
// and to keep the GPU informed. One instance per emulated process,
// constructed at subsystem start and carried for the life of the process.
type Memory struct {
	physical *PhysicalMemory
	flexible *FlexibleMemory

	reserver virtualmemory.Reserver
	gpumem   gpu.Memory
	gpurun   gpu.Run
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory(reserver virtualmemory.Reserver, gpumem gpu.Memory, gpurun gpu.Run) *Memory {
	return &Memory{
		physical: NewPhysicalMemory(),
		flexible: NewFlexibleMemory(),
		reserver: reserver,
		gpumem:   gpumem,
		gpurun:   gpurun,
	}
}

// DirectMemorySize returns the size in bytes of the emulated physical pool.
// The value is a constant of the emulated system, independent of allocation
// state.
func (mem *Memory) DirectMemorySize() uint64 {
	return PhysicalMemorySize
}

// AllocateDirectMemory finds physical space for a new direct-memory block.
// The block is placed inside [searchStart, searchEnd) at the requested
// alignment and is created unmapped. The memoryType argument is accepted
// for guest compatibility but not interpreted.
func (mem *Memory) AllocateDirectMemory(searchStart int64, searchEnd int64, length uint64, alignment uint64, memoryType int) (uint64, error) {
	if searchStart < 0 || searchEnd <= searchStart || length == 0 {
		return 0, curated.Errorf(InvalidArgument, "allocate direct memory")
	}

	physAddr, ok := mem.physical.Alloc(uint64(searchStart), uint64(searchEnd), length, alignment)
	if !ok {
		return 0, curated.Errorf(NoAllocation)
	}

	logger.Logf(logger.Allow, "memory",
		"direct alloc: phys=%#010x size=%#x align=%#x type=%d", physAddr, length, alignment, memoryType)

	return physAddr, nil
}

// ReleaseDirectMemory destroys the direct-memory block matching start and
// length exactly. Any virtual mapping the block carried is torn down; if
// the mapping was GPU-visible the GPU queue is drained before the GPU-side
// buffer is freed.
//
// Releasing a block this manager never allocated panics. The guest only
// knows the address because a previous allocation succeeded, so a miss here
// means the manager's state is corrupt.
func (mem *Memory) ReleaseDirectMemory(start int64, length uint64) error {
	if start < 0 || length == 0 {
		return curated.Errorf(InvalidArgument, "release direct memory")
	}

	unm, ok := mem.physical.Release(uint64(start), length)
	if !ok {
		panic(fmt.Sprintf("memory: release of unallocated direct memory (start=%#010x size=%#x)", start, length))
	}

	if unm.Vaddr != 0 || unm.Size != 0 {
		mem.reserver.Release(unm.Vaddr)
	}

	if unm.GpuMode != gpu.MemoryNoAccess {
		mem.gpurun.Wait()
		mem.gpumem.Free(unm.Vaddr, unm.Size)
	}

	logger.Logf(logger.Allow, "memory", "direct release: phys=%#010x size=%#x", start, length)

	return nil
}

// MapDirectMemory maps a previously allocated direct-memory block into the
// virtual address space, near addrHint if possible. The protection codes
// 0x32 and 0x33 additionally make the region GPU-visible, in which case the
// mapped range is registered with the GPU.
//
// A failed reservation returns OutOfMemory. If the block containing
// directMemoryStart cannot accept the mapping the reservation is rolled
// back and Busy returned.
func (mem *Memory) MapDirectMemory(addrHint uint64, length uint64, prot int, flags int, directMemoryStart int64, alignment uint64) (uint64, error) {
	if flags != 0 {
		return 0, curated.Errorf(InvalidArgument, "map direct memory: flags")
	}

	mode, gpuMode := decodeProt(prot, true)

	outAddr := mem.reserver.ReserveAligned(addrHint, length, mode, alignment)

	logger.Logf(logger.Allow, "memory",
		"direct map: hint=%#016x vaddr=%#016x size=%#x mode=%s gpu=%s", addrHint, outAddr, length, mode, gpuMode)

	if outAddr == 0 {
		return 0, curated.Errorf(OutOfMemory)
	}

	if !mem.physical.Map(outAddr, uint64(directMemoryStart), length, prot, mode, gpuMode) {
		mem.reserver.Release(outAddr)
		return 0, curated.Errorf(Busy)
	}

	if gpuMode != gpu.MemoryNoAccess {
		mem.gpumem.SetAllocatedRange(outAddr, length)
	}

	return outAddr, nil
}

// MapNamedFlexibleMemory creates an anonymous mapping of the given length,
// near addrHint if possible. The name is recorded in the log only; the
// emulated kernel does not keep it.
func (mem *Memory) MapNamedFlexibleMemory(addrHint uint64, length uint64, prot int, flags int, name string) (uint64, error) {
	if flags != 0 {
		return 0, curated.Errorf(InvalidArgument, "map flexible memory: flags")
	}

	mode, gpuMode := decodeProt(prot, false)

	outAddr := mem.reserver.Reserve(addrHint, length, mode)

	if !mem.flexible.Map(outAddr, length, prot, mode, gpuMode) {
		mem.reserver.Release(outAddr)
		return 0, curated.Errorf(OutOfMemory)
	}

	logger.Logf(logger.Allow, "memory",
		"flexible map %q: hint=%#016x vaddr=%#016x size=%#x mode=%s", name, addrHint, outAddr, length, mode)

	if outAddr == 0 {
		return 0, curated.Errorf(OutOfMemory)
	}

	return outAddr, nil
}

// Munmap removes the mapping matching vaddr and length exactly, from
// whichever pool holds it. The virtual range is released and, if the
// mapping was GPU-visible, the GPU queue is drained before the GPU-side
// buffer is freed.
//
// Unmapping a range neither pool is tracking panics, for the same reason as
// ReleaseDirectMemory.
func (mem *Memory) Munmap(vaddr uint64, length int64) error {
	if length <= 0 {
		return curated.Errorf(InvalidArgument, "munmap")
	}

	gpuMode, ok := mem.physical.Unmap(vaddr, uint64(length))
	if !ok {
		gpuMode, ok = mem.flexible.Unmap(vaddr, uint64(length))
	}
	if !ok {
		panic(fmt.Sprintf("memory: munmap of untracked range (vaddr=%#016x size=%#x)", vaddr, length))
	}

	if vaddr != 0 || length != 0 {
		mem.reserver.Release(vaddr)
	}

	if gpuMode != gpu.MemoryNoAccess {
		mem.gpurun.Wait()
		mem.gpumem.Free(vaddr, uint64(length))
	}

	logger.Logf(logger.Allow, "memory", "munmap: vaddr=%#016x size=%#x", vaddr, length)

	return nil
}

// QueryMemoryProtection reports the extent and protection of the mapped
// region containing addr. The direct pool is consulted first, then the
// flexible pool.
func (mem *Memory) QueryMemoryProtection(addr uint64) (Protection, error) {
	m, ok := mem.physical.Find(addr)
	if !ok {
		m, ok = mem.flexible.Find(addr)
	}
	if !ok {
		return Protection{}, curated.Errorf(NoPermission)
	}

	return Protection{
		Start: m.Base,
		End:   m.Base + m.Size - 1,
		Prot:  m.Prot,
	}, nil
}
