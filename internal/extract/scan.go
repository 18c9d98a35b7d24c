package extract

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Signature marks the start of a 7z container.
var Signature = [6]byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}

// PayloadLocation identifies where the embedded container starts inside an
// SFX stub. The payload runs from Offset to the end of Source.
type PayloadLocation struct {
	Source string
	Offset int64
}

// LocatePayload scans r once, front to back, and returns the offset of the
// first byte of Signature.
//
// The signature has no proper prefix that is also a suffix, so after a
// mismatch the only candidate restart is the current byte.
func LocatePayload(r io.Reader) (int64, error) {
	br := bufio.NewReader(r)

	var pos int64
	match := 0
	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return -1, ErrSignatureNotFound
			}
			return -1, fmt.Errorf("scan for signature: %w", err)
		}

		if b == Signature[match] {
			match++
			if match == len(Signature) {
				return pos - int64(len(Signature)) + 1, nil
			}
		} else if b == Signature[0] {
			match = 1
		} else {
			match = 0
		}
		pos++
	}
}

// ScanFile locates the embedded payload of the executable at path.
func ScanFile(path string) (PayloadLocation, error) {
	f, err := os.Open(path)
	if err != nil {
		return PayloadLocation{}, fmt.Errorf("open stub: %w", err)
	}
	defer f.Close()

	offset, err := LocatePayload(f)
	if err != nil {
		return PayloadLocation{}, fmt.Errorf("%s: %w", path, err)
	}

	return PayloadLocation{Source: path, Offset: offset}, nil
}
