// dnginfo prints the metadata of CFA DNG files.
//
// Usage:
//
//	dnginfo [-q|--quiet] <filename> [<filename> ...]
//
// Options:
//
//	-q, --quiet  Only report errors. Exit code indicates pass/fail.
//	-h, --help   Show this help message.
//
// Exit codes:
//
//	0: All files readable
//	1: One or more files unreadable
//	2: Usage error
package main

import (
	"fmt"
	"os"

	"github.com/mrjoshuak/go-dng/dngmeta"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: dnginfo [-q|--quiet] <filename> [<filename> ...]")
}

func main() {
	quiet := false
	files := []string{}

	for i := 1; i < len(os.Args); i++ {
		switch arg := os.Args[i]; arg {
		case "-q", "--quiet":
			quiet = true
		case "-h", "--help":
			usage()
			os.Exit(0)
		default:
			if len(arg) > 1 && arg[0] == '-' {
				fmt.Fprintf(os.Stderr, "dnginfo: unknown option %s\n", arg)
				usage()
				os.Exit(2)
			}
			files = append(files, arg)
		}
	}
	if len(files) == 0 {
		usage()
		os.Exit(2)
	}

	failed := false
	for _, name := range files {
		m, err := dngmeta.ReadFile(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dnginfo: %v\n", err)
			failed = true
			continue
		}
		if quiet {
			continue
		}
		fmt.Printf("%s:\n", name)
		fmt.Printf("  size:           %dx%d\n", m.Width, m.Height)
		fmt.Printf("  bits/sample:    %d\n", m.BitsPerSample)
		fmt.Printf("  camera:         %s\n", m.Camera)
		if m.PatternKnown {
			fmt.Printf("  cfa pattern:    %s\n", m.Pattern)
		} else {
			fmt.Printf("  cfa pattern:    unrecognized\n")
		}
		if m.ColorMatrix1 != nil {
			fmt.Printf("  color matrix 1: %v\n", m.ColorMatrix1)
		}
		if m.ColorMatrix2 != nil {
			fmt.Printf("  color matrix 2: %v\n", m.ColorMatrix2)
		}
		if m.Illuminant1 != 0 {
			fmt.Printf("  illuminant 1:   %d\n", m.Illuminant1)
		}
		if m.Illuminant2 != 0 {
			fmt.Printf("  illuminant 2:   %d\n", m.Illuminant2)
		}
		fmt.Printf("  dng version:    %d.%d.%d.%d\n",
			m.Version[0], m.Version[1], m.Version[2], m.Version[3])
	}
	if failed {
		os.Exit(1)
	}
}
