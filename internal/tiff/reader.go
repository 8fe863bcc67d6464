package tiff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrFormat reports data that is not a parseable TIFF file.
var ErrFormat = errors.New("tiff: invalid format")

const maxDirs = 32

// File is a parsed TIFF file held in memory.
type File struct {
	order binary.ByteOrder
	data  []byte
	dirs  []*Dir
}

// Entry is one parsed directory entry with its resolved value bytes.
type Entry struct {
	Tag   Tag
	Type  uint16
	Count uint32

	value []byte
}

// Dir is one parsed image file directory.
type Dir struct {
	file    *File
	entries map[Tag]Entry
}

// ReadFile parses the TIFF file at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses an in-memory TIFF file. The returned File keeps a
// reference to data.
func Parse(data []byte) (*File, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: truncated header", ErrFormat)
	}
	f := &File{data: data}
	switch binary.BigEndian.Uint16(data[0:2]) {
	case littleEndianMark:
		f.order = binary.LittleEndian
	case bigEndianMark:
		f.order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: bad byte order mark", ErrFormat)
	}
	if f.order.Uint16(data[2:4]) != versionMark {
		return nil, fmt.Errorf("%w: bad version", ErrFormat)
	}

	seen := make(map[uint32]bool)
	off := f.order.Uint32(data[4:8])
	for off != 0 {
		if seen[off] || len(f.dirs) >= maxDirs {
			return nil, fmt.Errorf("%w: directory chain loops", ErrFormat)
		}
		seen[off] = true
		d, next, err := f.parseDir(off)
		if err != nil {
			return nil, err
		}
		f.dirs = append(f.dirs, d)
		off = next
	}
	if len(f.dirs) == 0 {
		return nil, fmt.Errorf("%w: no image file directory", ErrFormat)
	}
	return f, nil
}

func (f *File) parseDir(off uint32) (*Dir, uint32, error) {
	r := newReader(f.data, f.order)
	if err := r.setPos(int(off)); err != nil {
		return nil, 0, fmt.Errorf("%w: directory offset out of range", ErrFormat)
	}
	n, err := r.uint16()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: truncated directory", ErrFormat)
	}

	d := &Dir{file: f, entries: make(map[Tag]Entry, n)}
	for i := 0; i < int(n); i++ {
		tag, err1 := r.uint16()
		ftype, err2 := r.uint16()
		count, err3 := r.uint32()
		inline, err4 := r.bytes(4)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return nil, 0, fmt.Errorf("%w: truncated directory entry", ErrFormat)
		}
		if int(ftype) >= len(typeSize) || typeSize[ftype] == 0 {
			continue // unknown field type, skip per TIFF 6.0 readers guidance
		}
		size := uint64(count) * uint64(typeSize[ftype])
		e := Entry{Tag: Tag(tag), Type: ftype, Count: count}
		if size <= 4 {
			e.value = inline[:size]
		} else {
			voff := f.order.Uint32(inline)
			if uint64(voff)+size > uint64(len(f.data)) {
				return nil, 0, fmt.Errorf("%w: tag %d value out of range", ErrFormat, tag)
			}
			e.value = f.data[voff : uint64(voff)+size]
		}
		d.entries[Tag(tag)] = e
	}

	next, err := r.uint32()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: truncated directory", ErrFormat)
	}
	return d, next, nil
}

// Order reports the file's byte order.
func (f *File) Order() binary.ByteOrder {
	return f.order
}

// NumDirs returns the number of image file directories.
func (f *File) NumDirs() int {
	return len(f.dirs)
}

// Dir returns the i-th image file directory.
func (f *File) Dir(i int) *Dir {
	return f.dirs[i]
}

// Bytes returns n raw file bytes starting at off, used to extract
// strip data located by a directory.
func (f *File) Bytes(off, n uint32) ([]byte, error) {
	if uint64(off)+uint64(n) > uint64(len(f.data)) {
		return nil, fmt.Errorf("%w: data at %d+%d out of range", ErrFormat, off, n)
	}
	return f.data[off : off+n], nil
}

// Entry returns the entry for tag, if present.
func (d *Dir) Entry(tag Tag) (Entry, bool) {
	e, ok := d.entries[tag]
	return e, ok
}

// Uint returns the first value of an integer field.
func (d *Dir) Uint(tag Tag) (uint32, bool) {
	v := d.Uints(tag)
	if len(v) == 0 {
		return 0, false
	}
	return v[0], true
}

// Uints returns all values of a BYTE, SHORT or LONG field, or nil.
func (d *Dir) Uints(tag Tag) []uint32 {
	e, ok := d.entries[tag]
	if !ok {
		return nil
	}
	v := make([]uint32, e.Count)
	for i := range v {
		switch e.Type {
		case TypeByte:
			v[i] = uint32(e.value[i])
		case TypeShort:
			v[i] = uint32(d.file.order.Uint16(e.value[2*i:]))
		case TypeLong:
			v[i] = d.file.order.Uint32(e.value[4*i:])
		default:
			return nil
		}
	}
	return v
}

// Bytes returns the raw value of a BYTE or UNDEFINED field, or nil.
func (d *Dir) Bytes(tag Tag) []byte {
	e, ok := d.entries[tag]
	if !ok || (e.Type != TypeByte && e.Type != TypeUndefined) {
		return nil
	}
	return e.value
}

// String returns the value of an ASCII field without its NUL.
func (d *Dir) String(tag Tag) (string, bool) {
	e, ok := d.entries[tag]
	if !ok || e.Type != TypeASCII {
		return "", false
	}
	v := e.value
	if len(v) > 0 && v[len(v)-1] == 0 {
		v = v[:len(v)-1]
	}
	return string(v), true
}

// Floats returns all values of a FLOAT field, or nil.
func (d *Dir) Floats(tag Tag) []float32 {
	e, ok := d.entries[tag]
	if !ok || e.Type != TypeFloat {
		return nil
	}
	v := make([]float32, e.Count)
	for i := range v {
		v[i] = math.Float32frombits(d.file.order.Uint32(e.value[4*i:]))
	}
	return v
}

// reader is a bounds-checked cursor over a byte slice in a given
// byte order.
type reader struct {
	data  []byte
	pos   int
	order binary.ByteOrder
}

func newReader(data []byte, order binary.ByteOrder) *reader {
	return &reader{data: data, order: order}
}

func (r *reader) setPos(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return fmt.Errorf("tiff: position %d out of range", pos)
	}
	r.pos = pos
	return nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, fmt.Errorf("tiff: read of %d bytes past end", n)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) uint16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

func (r *reader) uint32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}
