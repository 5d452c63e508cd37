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

// Package memory implements the guest kernel's memory manager. Guest
// programs see two pools: direct memory, carved out of a fixed-size emulated
// physical address space, and flexible memory, which is anonymous and has no
// physical backing. Regions of either pool can be mapped into the process's
// virtual address space and optionally tagged as visible to the GPU.
//
// PhysicalMemory and FlexibleMemory are the two block tables. The Memory
// type composes them with the virtualmemory and gpu collaborators, and
// presents the syscall surface that guest code reaches through libkernel:
// AllocateDirectMemory, MapDirectMemory, MapNamedFlexibleMemory, Munmap,
// ReleaseDirectMemory, QueryMemoryProtection and DirectMemorySize.
//
// Failures a guest program can legitimately cause come back as curated
// errors (see the pattern constants in errors.go) and can be translated to
// the guest errno encoding with KernelErrno(). Conditions that indicate the
// manager's own state has been corrupted, on the other hand, panic. A guest
// asking to unmap a range the manager swears it never mapped is not a guest
// error; something has gone wrong inside the emulator and continuing would
// let guest memory state silently diverge.
package memory
