// Copyright 2018-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/beevik/go6502core/host"
	"github.com/beevik/term"
)

var (
	start   uint
	verbose bool
)

func init() {
	flag.UintVar(&start, "start", 0, "reset the CPU to start at this address")
	flag.BoolVar(&verbose, "v", false, "echo commands read from script files")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: go6502core [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	log.SetFlags(0)
	flag.Parse()

	addr, ok, err := startAddr(flag.CommandLine, start)
	if err != nil {
		log.Fatalf("%v", err)
	}

	h := host.New()
	h.SetEcho(verbose)
	if ok {
		if err := h.ResetTo(addr); err != nil {
			log.Fatalf("reset: %v", err)
		}
	}

	// Break on Ctrl-C.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go handleInterrupt(h, c)

	// Run commands contained in command-line files.
	for _, filename := range flag.Args() {
		file, err := os.Open(filename)
		if err != nil {
			log.Fatalf("%v", err)
		}
		ok := h.RunCommands(file, os.Stdout, false)
		file.Close()
		if !ok {
			return
		}
	}

	// Run commands interactively.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	h.RunCommands(os.Stdin, os.Stdout, interactive)
}

// Return the -start address and whether it was given on the command line.
func startAddr(fs *flag.FlagSet, v uint) (addr uint16, ok bool, err error) {
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "start" {
			ok = true
		}
	})
	if !ok {
		return 0, false, nil
	}
	if v > 0xffff {
		return 0, false, fmt.Errorf("start address $%X is out of range", v)
	}
	return uint16(v), true, nil
}

func handleInterrupt(h *host.Host, c chan os.Signal) {
	for range c {
		h.Break()
	}
}
