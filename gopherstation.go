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
	"math/rand"
	"os"
	"time"

	"github.com/monchamp/gopherstation/hardware/virtualmemory"
	"github.com/monchamp/gopherstation/logger"
	"github.com/monchamp/gopherstation/modalflag"
	"github.com/monchamp/gopherstation/statsview"
	"github.com/monchamp/gopherstation/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("SOAK", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Println(err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "VERSION":
		fmt.Printf("%s (%s)\n", version.ApplicationName, version.Version)

	case "SOAK":
		md.NewMode()
		ops := md.AddInt("ops", 10000, "number of memory syscalls to run")
		seed := md.AddInt64("seed", 0, "random seed. zero seeds from the clock")
		graph := md.AddString("graph", "", "write block-table graph (dot format) to file on completion")
		stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (available: %v)", statsview.Available()))
		echo := md.AddBool("log", false, "echo log entries to stderr as they arrive")
		host := md.AddBool("host", false, "back reservations with host memory (linux only)")

		p, err := md.Parse()
		switch p {
		case modalflag.ParseHelp:
			os.Exit(0)
		case modalflag.ParseError:
			fmt.Println(err)
			os.Exit(10)
		}

		if *echo {
			logger.SetEcho(os.Stderr, false)
		}

		if *stats {
			statsview.Launch(os.Stdout)
		}

		var res reserver = virtualmemory.NewAddressSpace()
		if *host {
			res = hostReserver()
			if res == nil {
				fmt.Println("host-backed reservations are not supported on this platform")
				os.Exit(10)
			}
		}

		if *seed == 0 {
			*seed = time.Now().UnixNano()
		}
		fmt.Printf("soak seed: %d\n", *seed)

		err = soak(os.Stdout, rand.New(rand.NewSource(*seed)), *ops, *graph, res)
		if err != nil {
			fmt.Println(err)
			os.Exit(10)
		}
	}
}
