package store

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	// HeaderSize is the fixed header size.
	HeaderSize = 64

	// Magic identifies a valid kdpart point file.
	Magic = "KDPT"

	// FormatVersion is the current file format version.
	FormatVersion uint16 = 1

	// PageAlign is the alignment of the point data region.
	PageAlign = 4096
)

// Header holds the persisted point-file metadata.
type Header struct {
	Magic      [4]byte
	Version    uint16
	Dim        uint16
	BlockSize  uint32
	Count      uint64
	DataOffset uint64
	Reserved   [36]byte // pad to 64 bytes
}

// EncodeHeader writes the header to a byte slice, padded to HeaderSize.
func EncodeHeader(h *Header) ([]byte, error) {
	if h == nil {
		return nil, errors.New("header is nil")
	}
	copy(h.Magic[:], Magic)
	h.Version = FormatVersion
	var w bytes.Buffer
	if err := binary.Write(&w, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	b := w.Bytes()
	if len(b) < HeaderSize {
		padded := make([]byte, HeaderSize)
		copy(padded, b)
		return padded, nil
	}
	return b, nil
}

// DecodeHeader reads the header from src. Returns error if magic/version invalid.
func DecodeHeader(src []byte) (*Header, error) {
	if len(src) < HeaderSize {
		return nil, errors.New("header too short")
	}
	var h Header
	r := bytes.NewReader(src[:HeaderSize])
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if string(h.Magic[:]) != Magic {
		return nil, errors.New("invalid magic")
	}
	if h.Version != FormatVersion {
		return nil, errors.New("unsupported format version")
	}
	return &h, nil
}

// AlignUp rounds x up to the next multiple of align.
func AlignUp(x, align int64) int64 {
	if x%align == 0 {
		return x
	}
	return (x/align + 1) * align
}
