// pgm2dng converts a binary PGM (P5) grayscale image into a CFA DNG.
//
// Usage:
//
//	pgm2dng [options] <input.pgm> <output.dng>
//
// Options:
//
//	-c, --camera <name>     Unique camera model (default "Unknown")
//	-p, --pattern <name>    CFA pattern: RGGB, BGGR, GBRG or GRBG
//	-h, --help              Show this help message.
//
// The PGM samples are taken as raw mosaic data; no demosaicing or
// color processing happens here.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mrjoshuak/go-dng/dng"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pgm2dng [-c camera] [-p pattern] <input.pgm> <output.dng>")
}

func main() {
	var opts dng.Options
	files := []string{}

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "-c", "--camera":
			i++
			if i >= len(args) {
				usage()
				os.Exit(2)
			}
			opts.Camera = args[i]
		case "-p", "--pattern":
			i++
			if i >= len(args) {
				usage()
				os.Exit(2)
			}
			p, err := dng.ParsePattern(args[i])
			if err != nil {
				fmt.Fprintf(os.Stderr, "pgm2dng: %v\n", err)
				os.Exit(2)
			}
			opts.Pattern = p
		case "-h", "--help":
			usage()
			os.Exit(0)
		default:
			if len(arg) > 1 && arg[0] == '-' {
				fmt.Fprintf(os.Stderr, "pgm2dng: unknown option %s\n", arg)
				usage()
				os.Exit(2)
			}
			files = append(files, arg)
		}
	}
	if len(files) != 2 {
		usage()
		os.Exit(2)
	}

	raw, err := readPGM(files[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "pgm2dng: %v\n", err)
		os.Exit(1)
	}
	if err := dng.Save(raw, files[1], &opts); err != nil {
		fmt.Fprintf(os.Stderr, "pgm2dng: %v\n", err)
		os.Exit(1)
	}
}

// readPGM reads a binary (P5) PGM file. Sixteen-bit PGM samples are
// big-endian and get swapped into the little-endian order dng.Raw
// uses.
func readPGM(path string) (*dng.Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var magic string
	if _, err := fmt.Fscan(r, &magic); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if magic != "P5" {
		return nil, fmt.Errorf("%s: not a binary PGM file", path)
	}
	width, err := readPGMInt(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	height, err := readPGMInt(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	maxval, err := readPGMInt(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if width <= 0 || height <= 0 || maxval <= 0 || maxval >= 1<<16 {
		return nil, fmt.Errorf("%s: bad PGM header", path)
	}

	if maxval < 256 {
		raw := dng.NewRaw8(width, height)
		if _, err := io.ReadFull(r, raw.Pix); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return raw, nil
	}

	buf := make([]byte, 2*width*height)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	raw := dng.NewRaw16(width, height)
	for i := 0; i < len(buf); i += 2 {
		raw.Pix[i] = buf[i+1]
		raw.Pix[i+1] = buf[i]
	}
	return raw, nil
}

// readPGMInt reads one header integer, skipping whitespace and
// '#' comment lines, and consumes the single byte following it.
func readPGMInt(r *bufio.Reader) (int, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		switch {
		case b == '#':
			if _, err := r.ReadString('\n'); err != nil {
				return 0, err
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			continue
		case b >= '0' && b <= '9':
			n := int(b - '0')
			for {
				b, err := r.ReadByte()
				if err != nil {
					return n, nil
				}
				if b < '0' || b > '9' {
					return n, nil
				}
				n = n*10 + int(b-'0')
				if n > 1<<20 {
					return 0, fmt.Errorf("header value too large")
				}
			}
		default:
			return 0, fmt.Errorf("unexpected byte %q in header", b)
		}
	}
}
