// Copyright 2025 The paging Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/agreval/paging"
	"github.com/agreval/paging/cmd/internal/meter"
	"github.com/agreval/paging/cmd/internal/prompt"

	"golang.org/x/exp/mmap"
)

// Address-space sizes fixed by the exercise statement.
const (
	virtualAddressBits  = 32
	physicalAddressBits = 21
)

var (
	traceFile string
	tableFile string
	pagesFlag bool
	printFlag bool
	verbose   bool
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "Utility that translates virtual addresses to physical\n")
		fmt.Fprintf(flag.CommandLine.Output(), "addresses through a single-level page table.\n")
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [hex-address]\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "With no address and no -trace, one address is read from standard input.\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&traceFile, "trace", "", "translate every address of a trace file, one hex address per line")
	flag.StringVar(&tableFile, "table", "", "JSON file with the page table to use instead of the built-in one")
	flag.BoolVar(&pagesFlag, "pages", false, "print per-page reference counts after processing a trace")
	flag.BoolVar(&printFlag, "print", false, "print every translation when processing a trace")
	flag.BoolVar(&verbose, "v", false, "enable debug logging")
}

func checkFlags() error {
	if flag.NArg() > 1 {
		return errors.New("incorrect number of arguments")
	}
	if flag.NArg() == 1 && traceFile != "" {
		return errors.New("-trace cannot be combined with an address argument")
	}
	if pagesFlag && traceFile == "" {
		return errors.New("-pages requires -trace")
	}
	return nil
}

func run() error {
	table := paging.DefaultTable()
	if tableFile != "" {
		var err error
		table, err = paging.LoadTable(tableFile)
		if err != nil {
			return err
		}
		slog.Debug("loaded page table", "path", tableFile, "entries", len(table))
	}

	if traceFile != "" {
		return runTrace(table)
	}

	var addr paging.Address
	var err error
	if flag.NArg() == 1 {
		addr, err = paging.ParseAddress(flag.Arg(0))
	} else {
		printFormat()
		addr, err = prompt.Address(fmt.Sprintf("\nEnter a virtual address (hex, up to %d bits): ", virtualAddressBits))
	}
	if err != nil {
		return err
	}
	terr := translateOne(table, addr)
	printSpaceSizes()
	return terr
}

func printFormat() {
	fmt.Println("Virtual address format:")
	fmt.Printf(" - page number: %d bits (bits %d to %d of the address)\n",
		paging.SingleLevel.Page.Bits, paging.SingleLevel.Page.Shift, paging.SingleLevel.Span()-1)
	fmt.Printf(" - page offset: %d bits (bits 0 to %d of the address)\n",
		paging.SingleLevel.Offset.Bits, paging.SingleLevel.Offset.Bits-1)
}

func translateOne(table paging.Table, addr paging.Address) error {
	if uint64(addr)>>virtualAddressBits != 0 {
		slog.Warn("address wider than the virtual address space; high bits ignored",
			"address", fmt.Sprintf("0x%X", uint64(addr)),
			"bits", virtualAddressBits)
	}
	page, offset := paging.SingleLevel.Split(addr)
	fmt.Printf("Page number: %d, offset: 0x%X\n", page, offset)
	phys, err := table.Translate(page, offset)
	if err != nil {
		return err
	}
	fmt.Printf("Physical address: 0x%X\n", uint64(phys))
	return nil
}

func printSpaceSizes() {
	virtual := uint64(1) << virtualAddressBits
	physical := uint64(1) << physicalAddressBits
	fmt.Printf("The virtual address space is %d bytes (%.2f GB)\n", virtual, float64(virtual)/float64(1<<30))
	fmt.Printf("Physical memory is %d bytes (%.2f MB)\n", physical, float64(physical)/float64(1<<20))
}

func runTrace(table paging.Table) error {
	r, err := mmap.Open(traceFile)
	if err != nil {
		return fmt.Errorf("failed to map trace: %v", err)
	}
	defer r.Close()
	fmt.Println("Reading trace...")
	tr, err := paging.NewReader(r)
	if err != nil {
		return err
	}

	var pMu sync.Mutex
	m := meter.Start(func() float64 {
		pMu.Lock()
		prog := tr.Progress()
		pMu.Unlock()
		return prog
	}, meter.Format("Translating... %.1f%%"))

	var sum paging.Summary
	var hist PageHist
	for {
		pMu.Lock()
		addr, err := tr.Next()
		pMu.Unlock()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading trace: %v", err)
		}
		page, offset := paging.SingleLevel.Split(addr)
		phys, terr := table.Translate(page, offset)
		sum.Observe(page, terr)
		hist.Add(page)
		slog.Debug("translated address",
			"address", uint64(addr),
			"page", page, "offset", offset,
			"physical", uint64(phys), "err", terr)
		if printFlag {
			switch {
			case terr == nil:
				fmt.Printf("0x%08X: page %d, offset 0x%03X -> 0x%X\n", uint64(addr), page, offset, uint64(phys))
			case errors.Is(terr, paging.ErrPageNotResident):
				fmt.Printf("0x%08X: page %d, offset 0x%03X -> in swap\n", uint64(addr), page, offset)
			default:
				fmt.Printf("0x%08X: page %d, offset 0x%03X -> out of range\n", uint64(addr), page, offset)
			}
		}
	}
	m.Stop()

	fmt.Printf("Translated %d addresses: %d resident, %d in swap, %d out of range\n",
		sum.Addresses, sum.Resident, sum.Swapped, sum.OutOfRange)
	fmt.Printf("Distinct pages referenced: %d\n", sum.DistinctPages)
	if pagesFlag {
		fmt.Println("References per page:")
		hist.ForEach(func(page, count uint64) {
			fmt.Printf("  page %3d: %d\n", page, count)
		})
	}
	return nil
}

func main() {
	flag.Parse()
	if err := checkFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}
