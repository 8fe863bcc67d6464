// Package tiff implements the small TIFF directory engine behind the
// DNG writer and reader: open for write, set tag, write scanline,
// write directory, close.
//
// The writer produces a little-endian baseline TIFF with a single
// uncompressed strip. Pixel data follows the 8-byte header directly
// and the image file directory is written last, so a file whose
// header still points at offset zero has no complete image. The
// reader half understands both byte orders.
package tiff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
)

const (
	headerSize = 8
	entrySize  = 12

	littleEndianMark = 0x4949 // "II"
	bigEndianMark    = 0x4d4d // "MM"
	versionMark      = 42
)

// Writer state errors.
var (
	ErrDirectoryWritten = errors.New("tiff: directory already written")
	ErrClosed           = errors.New("tiff: writer is closed")
)

type entry struct {
	tag   Tag
	ftype uint16
	count uint32
	data  []byte // value bytes, already little-endian
}

// Writer emits a single-directory TIFF file. Field setters stage
// directory entries in memory; WriteScanline streams pixel data;
// WriteDirectory emits the directory exactly once.
//
// Setters do not return errors. A state violation or an I/O failure
// sticks and is reported by the next WriteScanline, WriteDirectory
// or Err call, in the manner of bufio.Writer.
type Writer struct {
	ws     io.WriteSeeker
	file   *os.File // owned handle when created via Create
	fields map[Tag]entry

	off        int64 // current write offset
	row        int   // next scanline expected
	dirWritten bool
	closed     bool
	err        error
}

// NewWriter starts a TIFF file on ws, which must be positioned at
// offset zero. The header is written immediately.
func NewWriter(ws io.WriteSeeker) (*Writer, error) {
	w := &Writer{ws: ws, fields: make(map[Tag]entry)}
	var hdr [headerSize]byte
	binary.LittleEndian.PutUint16(hdr[0:2], littleEndianMark)
	binary.LittleEndian.PutUint16(hdr[2:4], versionMark)
	// Directory offset stays zero until WriteDirectory fills it in.
	if err := w.write(hdr[:]); err != nil {
		return nil, err
	}
	return w, nil
}

// Create creates the file at path and starts a TIFF file in it.
// The returned Writer owns the handle; Close releases it.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.file = f
	return w, nil
}

// Err returns the first error encountered by the writer, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) fail(err error) error {
	if w.err == nil {
		w.err = err
	}
	return w.err
}

func (w *Writer) write(p []byte) error {
	if w.err != nil {
		return w.err
	}
	n, err := w.ws.Write(p)
	w.off += int64(n)
	if err != nil {
		return w.fail(err)
	}
	return nil
}

func (w *Writer) set(tag Tag, ftype uint16, count uint32, data []byte) {
	if w.err != nil {
		return
	}
	if w.closed {
		w.fail(ErrClosed)
		return
	}
	if w.dirWritten {
		w.fail(fmt.Errorf("%w: cannot set tag %d", ErrDirectoryWritten, tag))
		return
	}
	w.fields[tag] = entry{tag: tag, ftype: ftype, count: count, data: data}
}

// SetShort stages a SHORT field.
func (w *Writer) SetShort(tag Tag, v ...uint16) {
	data := make([]byte, 2*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint16(data[2*i:], x)
	}
	w.set(tag, TypeShort, uint32(len(v)), data)
}

// SetLong stages a LONG field.
func (w *Writer) SetLong(tag Tag, v ...uint32) {
	data := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(data[4*i:], x)
	}
	w.set(tag, TypeLong, uint32(len(v)), data)
}

// SetByte stages a BYTE field.
func (w *Writer) SetByte(tag Tag, v ...byte) {
	data := make([]byte, len(v))
	copy(data, v)
	w.set(tag, TypeByte, uint32(len(v)), data)
}

// SetASCII stages an ASCII field. The terminating NUL is appended
// here and included in the count, per the TIFF specification.
func (w *Writer) SetASCII(tag Tag, s string) {
	data := make([]byte, len(s)+1)
	copy(data, s)
	w.set(tag, TypeASCII, uint32(len(data)), data)
}

// SetFloat stages a FLOAT field of 32-bit IEEE values.
func (w *Writer) SetFloat(tag Tag, v ...float32) {
	data := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(data[4*i:], math.Float32bits(x))
	}
	w.set(tag, TypeFloat, uint32(len(v)), data)
}

// fieldUint returns the first value of a staged integer field.
func (w *Writer) fieldUint(tag Tag) (uint32, bool) {
	e, ok := w.fields[tag]
	if !ok || e.count == 0 {
		return 0, false
	}
	switch e.ftype {
	case TypeByte:
		return uint32(e.data[0]), true
	case TypeShort:
		return uint32(binary.LittleEndian.Uint16(e.data)), true
	case TypeLong:
		return binary.LittleEndian.Uint32(e.data), true
	}
	return 0, false
}

// ScanlineSize returns the byte length of one row, derived from the
// staged ImageWidth, BitsPerSample and SamplesPerPixel fields.
func (w *Writer) ScanlineSize() (int, error) {
	width, ok := w.fieldUint(TagImageWidth)
	if !ok {
		return 0, errors.New("tiff: ImageWidth not set")
	}
	bits, ok := w.fieldUint(TagBitsPerSample)
	if !ok {
		return 0, errors.New("tiff: BitsPerSample not set")
	}
	spp, ok := w.fieldUint(TagSamplesPerPixel)
	if !ok {
		spp = 1
	}
	if bits%8 != 0 {
		return 0, fmt.Errorf("tiff: unsupported BitsPerSample %d", bits)
	}
	return int(width) * int(spp) * int(bits) / 8, nil
}

// WriteScanline emits one row of pixel data. Rows must be written in
// order, starting at zero, and data must be exactly one scanline.
func (w *Writer) WriteScanline(row int, data []byte) error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return w.fail(ErrClosed)
	}
	if w.dirWritten {
		return w.fail(ErrDirectoryWritten)
	}
	size, err := w.ScanlineSize()
	if err != nil {
		return w.fail(err)
	}
	if len(data) != size {
		return w.fail(fmt.Errorf("tiff: scanline %d is %d bytes, want %d", row, len(data), size))
	}
	if row != w.row {
		return w.fail(fmt.Errorf("tiff: scanline %d written out of order, want %d", row, w.row))
	}
	if err := w.write(data); err != nil {
		return err
	}
	w.row++
	return nil
}

// WriteDirectory finalizes the image: it fills in the strip layout
// fields, writes the sorted directory after the pixel data and links
// it from the header. It may be called at most once.
func (w *Writer) WriteDirectory() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return w.fail(ErrClosed)
	}
	if w.dirWritten {
		return w.fail(ErrDirectoryWritten)
	}

	// The engine owns the strip layout: one uncompressed strip
	// holding every scanline, starting right after the header.
	if _, ok := w.fields[TagCompression]; !ok {
		w.SetShort(TagCompression, CompressionNone)
	}
	if _, ok := w.fields[TagRowsPerStrip]; !ok {
		w.SetLong(TagRowsPerStrip, uint32(w.row))
	}
	w.SetLong(TagStripOffsets, headerSize)
	w.SetLong(TagStripByteCounts, uint32(w.off-headerSize))
	if w.err != nil {
		return w.err
	}

	// Word-align the directory.
	if w.off%2 != 0 {
		if err := w.write([]byte{0}); err != nil {
			return err
		}
	}
	dirOff := w.off

	entries := make([]entry, 0, len(w.fields))
	for _, e := range w.fields {
		entries = append(entries, e)
	}
	// Entries must appear in ascending tag order (TIFF 6.0, page 15).
	sort.Slice(entries, func(i, j int) bool { return entries[i].tag < entries[j].tag })

	// Values longer than four bytes land in a pointer area directly
	// after the directory block.
	pstart := dirOff + int64(2+entrySize*len(entries)+4)
	var parea []byte

	block := make([]byte, 0, 2+entrySize*len(entries)+4)
	block = binary.LittleEndian.AppendUint16(block, uint16(len(entries)))
	for _, e := range entries {
		var buf [entrySize]byte
		binary.LittleEndian.PutUint16(buf[0:2], uint16(e.tag))
		binary.LittleEndian.PutUint16(buf[2:4], e.ftype)
		binary.LittleEndian.PutUint32(buf[4:8], e.count)
		if len(e.data) <= 4 {
			copy(buf[8:12], e.data)
		} else {
			binary.LittleEndian.PutUint32(buf[8:12], uint32(pstart+int64(len(parea))))
			parea = append(parea, e.data...)
			if len(e.data)%2 != 0 {
				parea = append(parea, 0)
			}
		}
		block = append(block, buf[:]...)
	}
	// Offset of the next directory; zero marks the last one.
	block = binary.LittleEndian.AppendUint32(block, 0)
	block = append(block, parea...)

	if err := w.write(block); err != nil {
		return err
	}

	// Link the directory from the header.
	if _, err := w.ws.Seek(4, io.SeekStart); err != nil {
		return w.fail(err)
	}
	var link [4]byte
	binary.LittleEndian.PutUint32(link[:], uint32(dirOff))
	if _, err := w.ws.Write(link[:]); err != nil {
		return w.fail(err)
	}
	if _, err := w.ws.Seek(w.off, io.SeekStart); err != nil {
		return w.fail(err)
	}

	w.dirWritten = true
	return nil
}

// Close releases the file handle, if the writer owns one. It is safe
// to call after a failure and is idempotent.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}
