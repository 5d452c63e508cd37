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

import "github.com/monchamp/gopherstation/curated"

// Error patterns for the memory syscalls. Every error returned by the
// Memory type uses one of these patterns, so callers can sort failures with
// curated.Is() and translate them for the guest with KernelErrno().
const (
	// arguments that fail validation before any state is touched
	InvalidArgument = "memory: invalid argument: %s"

	// the virtual-address reservation failed
	OutOfMemory = "memory: out of memory"

	// no placement found inside the direct-memory search range
	NoAllocation = "memory: no allocation possible in search range"

	// the direct block is already mapped, or no block contains the
	// requested physical address
	Busy = "memory: direct memory busy"

	// the queried address is not mapped in either pool
	NoPermission = "memory: address is not mapped"
)

// The errno encoding guest programs expect from libkernel: the POSIX errno
// value with the kernel error tag in the upper half.
const (
	KernelErrorENOMEM = 0x8002000c
	KernelErrorEACCES = 0x8002000d
	KernelErrorEFAULT = 0x8002000e
	KernelErrorEBUSY  = 0x80020010
	KernelErrorEINVAL = 0x80020016
	KernelErrorEAGAIN = 0x80020023
)

// KernelErrno translates an error returned by the Memory type into the
// errno encoding expected by guest code. A nil error translates to zero. An
// error this package did not create translates to EFAULT.
func KernelErrno(err error) uint32 {
	switch {
	case err == nil:
		return 0
	case curated.Has(err, InvalidArgument):
		return KernelErrorEINVAL
	case curated.Has(err, OutOfMemory):
		return KernelErrorENOMEM
	case curated.Has(err, NoAllocation):
		return KernelErrorEAGAIN
	case curated.Has(err, Busy):
		return KernelErrorEBUSY
	case curated.Has(err, NoPermission):
		return KernelErrorEACCES
	}
	return KernelErrorEFAULT
}
