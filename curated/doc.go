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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It takes a
// formatting pattern and placeholder values, like fmt.Errorf(), but the
// pattern string is also the identity of the error. The Is() function checks
// whether an error was created with a specific pattern:
//
//	e := curated.Errorf("memory: out of memory")
//
//	if curated.Is(e, "memory: out of memory") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks whether the pattern occurs
// anywhere in the error chain, which is useful when a curated error has been
// wrapped inside another curated error.
//
// Patterns used in this way should be stored as suitably named const
// strings. The syscall layer of the emulated kernel uses this mechanism for
// the error codes it reports to guest programs (see the hardware/memory
// package).
//
// The IsAny() function answers whether the error is curated at all. We can
// think of the difference between curated and uncurated errors as the
// difference between 'expected' and 'unexpected' errors, depending on how we
// choose to handle the result of a function call.
//
// The Error() function implementation normalises the message chain by
// removing duplicate adjacent parts. The practical advantage is that calling
// code does not need to worry about how many times an error has been wrapped
// on its way up; the message prints once. For the purposes of this package a
// chain is composed of parts separated by the sub-string ': ', as suggested
// on p239 of "The Go Programming Language" (Donovan, Kernighan).
package curated
