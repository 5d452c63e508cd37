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
	"io"

	"github.com/bradleyjkemp/memviz"
)

// blockTables is the shape of the WriteGraph output: a stable copy of both
// block tables taken outside the allocators' locks.
type blockTables struct {
	Direct   []PhysicalBlock
	Flexible []FlexibleBlock
}

// WriteGraph writes a graphviz (dot) visualisation of the live block tables
// to the io.Writer. Purely a debugging aid.
//
// The two tables are snapshotted one at a time, so a concurrent syscall may
// leave the picture slightly torn. Fine for diagnostics.
func (mem *Memory) WriteGraph(w io.Writer) {
	tables := blockTables{
		Direct:   mem.physical.snapshot(),
		Flexible: mem.flexible.snapshot(),
	}
	memviz.Map(w, &tables)
}
