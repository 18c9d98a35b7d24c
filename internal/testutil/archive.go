package testutil

import (
	"archive/tar"
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"

	"github.com/klauspost/pgzip"
)

// TarEntry describes one entry of a test tar.gz archive.
// A zero Type means a regular file; a zero Mode means 0644.
type TarEntry struct {
	Name     string
	Body     string
	Type     byte
	Linkname string
	Mode     int64
}

// TarGz writes entries to a fresh archive under t.TempDir and returns its path.
func TarGz(t *testing.T, entries ...TarEntry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.tar.gz")
	WriteTarGz(t, path, entries...)
	return path
}

// WriteTarGz writes entries as a pgzip-compressed tar stream to path.
func WriteTarGz(t *testing.T, path string, entries ...TarEntry) {
	t.Helper()

	var buf bytes.Buffer
	gzipWriter := pgzip.NewWriter(&buf)
	tarWriter := tar.NewWriter(gzipWriter)

	for _, e := range entries {
		header := &tar.Header{
			Name:     e.Name,
			Typeflag: e.Type,
			Linkname: e.Linkname,
			Mode:     e.Mode,
		}
		if header.Typeflag == 0 {
			header.Typeflag = tar.TypeReg
		}
		if header.Mode == 0 {
			header.Mode = 0644
		}
		if header.Typeflag == tar.TypeReg {
			header.Size = int64(len(e.Body))
		}

		if err := tarWriter.WriteHeader(header); err != nil {
			t.Fatalf("failed to write header for %s: %v", e.Name, err)
		}
		if header.Size > 0 {
			if _, err := tarWriter.Write([]byte(e.Body)); err != nil {
				t.Fatalf("failed to write content for %s: %v", e.Name, err)
			}
		}
	}

	if err := tarWriter.Close(); err != nil {
		t.Fatalf("failed to close tar writer: %v", err)
	}
	if err := gzipWriter.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}

	WriteFile(t, path, buf.Bytes())
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(t *testing.T, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// Coder method ids understood by SevenZip.
var (
	MethodCopy  = []byte{0x00}
	MethodLZMA2 = []byte{0x21}
)

var sevenZipSignature = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}

// SevenZipEntry describes one entry of a hand-built 7z image. Every file
// with content is stored in its own folder with a single coder; a nil Method
// means copy. Files without content are recorded as empty files.
// Props and Method let tests describe streams no decoder accepts, and
// BadCRC stores a wrong checksum. MissingStream lists the entry in the
// header without a stream or an empty-stream record, so the header declares
// more files than it can account for.
type SevenZipEntry struct {
	Name          string
	Dir           bool
	Data          []byte
	Method        []byte
	Props         []byte
	BadCRC        bool
	MissingStream bool
}

func (e SevenZipEntry) emptyStream() bool {
	return e.Dir || (len(e.Data) == 0 && !e.MissingStream)
}

// SevenZip assembles a minimal 7z image with a plain (unencoded) header.
func SevenZip(t *testing.T, entries ...SevenZipEntry) []byte {
	t.Helper()

	var packed bytes.Buffer
	var streams []SevenZipEntry
	var empty []SevenZipEntry
	for _, e := range entries {
		switch {
		case e.MissingStream:
		case e.emptyStream():
			empty = append(empty, e)
		default:
			streams = append(streams, e)
			packed.Write(e.Data)
		}
	}

	var h bytes.Buffer
	h.WriteByte(0x01) // header

	if len(streams) > 0 {
		h.WriteByte(0x04) // main streams info

		h.WriteByte(0x06) // pack info
		writeNumber(&h, 0)
		writeNumber(&h, uint64(len(streams)))
		h.WriteByte(0x09)
		for _, s := range streams {
			writeNumber(&h, uint64(len(s.Data)))
		}
		h.WriteByte(0x00)

		h.WriteByte(0x07) // unpack info
		h.WriteByte(0x0B)
		writeNumber(&h, uint64(len(streams)))
		h.WriteByte(0x00)
		for _, s := range streams {
			method := s.Method
			if method == nil {
				method = MethodCopy
			}
			writeNumber(&h, 1)
			flag := byte(len(method))
			if len(s.Props) > 0 {
				flag |= 0x20
			}
			h.WriteByte(flag)
			h.Write(method)
			if len(s.Props) > 0 {
				writeNumber(&h, uint64(len(s.Props)))
				h.Write(s.Props)
			}
		}
		h.WriteByte(0x0C)
		for _, s := range streams {
			writeNumber(&h, uint64(len(s.Data)))
		}
		h.WriteByte(0x00)

		h.WriteByte(0x08) // substreams info
		h.WriteByte(0x0A)
		h.WriteByte(0x01)
		for _, s := range streams {
			sum := crc32.ChecksumIEEE(s.Data)
			if s.BadCRC {
				sum ^= 0xFFFFFFFF
			}
			_ = binary.Write(&h, binary.LittleEndian, sum)
		}
		h.WriteByte(0x00)

		h.WriteByte(0x00)
	}

	h.WriteByte(0x05) // files info
	writeNumber(&h, uint64(len(entries)))

	if len(empty) > 0 {
		bits := make([]byte, (len(entries)+7)/8)
		for i, e := range entries {
			if e.emptyStream() {
				bits[i/8] |= 0x80 >> (i % 8)
			}
		}
		h.WriteByte(0x0E) // empty streams
		writeNumber(&h, uint64(len(bits)))
		h.Write(bits)

		files := make([]byte, (len(empty)+7)/8)
		hasFile := false
		for i, e := range empty {
			if !e.Dir {
				files[i/8] |= 0x80 >> (i % 8)
				hasFile = true
			}
		}
		if hasFile {
			h.WriteByte(0x0F) // empty files
			writeNumber(&h, uint64(len(files)))
			h.Write(files)
		}
	}

	h.WriteByte(0x15) // attributes
	writeNumber(&h, uint64(2+4*len(entries)))
	h.WriteByte(0x01)
	h.WriteByte(0x00)
	for _, e := range entries {
		attr := uint32(0x20)
		if e.Dir {
			attr = 0x10
		}
		_ = binary.Write(&h, binary.LittleEndian, attr)
	}

	var names bytes.Buffer
	for _, e := range entries {
		for _, u := range utf16.Encode([]rune(e.Name)) {
			_ = binary.Write(&names, binary.LittleEndian, u)
		}
		names.Write([]byte{0, 0})
	}
	h.WriteByte(0x11) // names
	writeNumber(&h, uint64(1+names.Len()))
	h.WriteByte(0x00)
	h.Write(names.Bytes())

	h.WriteByte(0x00) // end of files info
	h.WriteByte(0x00) // end of header

	header := h.Bytes()
	start := make([]byte, 20)
	binary.LittleEndian.PutUint64(start[0:], uint64(packed.Len()))
	binary.LittleEndian.PutUint64(start[8:], uint64(len(header)))
	binary.LittleEndian.PutUint32(start[16:], crc32.ChecksumIEEE(header))

	var out bytes.Buffer
	out.Write(sevenZipSignature)
	out.Write([]byte{0, 4})
	_ = binary.Write(&out, binary.LittleEndian, crc32.ChecksumIEEE(start))
	out.Write(start)
	out.Write(packed.Bytes())
	out.Write(header)
	return out.Bytes()
}

// writeNumber writes v in the variable-length encoding of 7z headers.
func writeNumber(w *bytes.Buffer, v uint64) {
	var first byte
	mask := byte(0x80)
	i := 0
	for ; i < 8; i++ {
		if v < uint64(1)<<(7*(i+1)) {
			first |= byte(v >> (8 * i))
			break
		}
		first |= mask
		mask >>= 1
	}
	w.WriteByte(first)
	for j := 0; j < i; j++ {
		w.WriteByte(byte(v >> (8 * j)))
	}
}

// SfxStub prefixes a 7z image with executable-looking bytes, the way a
// self-extracting 7z.exe carries its payload.
func SfxStub(image []byte) []byte {
	stub := []byte("MZ\x90\x00\x03\x00\x00\x00 self-extracting stub \x00\x00")
	return append(stub, image...)
}
