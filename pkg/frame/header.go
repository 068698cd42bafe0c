// Package frame implements a length-prefixed binary frame: a fixed 16 byte
// header followed by a payload that is either raw or zstd compressed.
//
//	offset size field
//	0      4    magic "FXM1"
//	4      2    version
//	6      2    flags
//	8      4    stored payload length
//	12     4    raw payload length
//	16     ...  payload
//
// With FlagCRC32 set, a 4 byte CRC-32 (IEEE) of the stored payload follows
// the payload. All integers are little endian.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rawbytedev/fixedmem/pkg/arrayext"
)

const (
	HeaderSize = 16
	VersionV1  = 1

	FlagZstd   = 0x0001 // payload is a zstd frame
	FlagCRC32  = 0x0002 // payload is followed by its CRC-32
	knownFlags = FlagZstd | FlagCRC32
	CRCSize    = 4

	DefaultMaxPayload = 64 << 20
)

var Magic = [4]byte{'F', 'X', 'M', '1'}

var (
	ErrShortFrame         = errors.New("frame shorter than header")
	ErrBadMagic           = errors.New("invalid magic")
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrTruncated          = errors.New("frame payload truncated")
	ErrPayloadTooLarge    = errors.New("payload too large")
	ErrSizeMismatch       = errors.New("payload size mismatch")
	ErrChecksum           = errors.New("payload checksum mismatch")
	ErrUnknownFlags       = errors.New("unknown header flags")
)

type Header struct {
	Version   uint16 // 2B
	Flags     uint16 // 2B
	StoredLen uint32 // 4B: bytes following the header
	RawLen    uint32 // 4B: bytes after decompression
}

// Bytes serializes h behind the magic.
func (h Header) Bytes() [HeaderSize]byte {
	var vf [4]byte
	binary.LittleEndian.PutUint16(vf[0:], h.Version)
	binary.LittleEndian.PutUint16(vf[2:], h.Flags)
	var lens [8]byte
	binary.LittleEndian.PutUint32(lens[0:], h.StoredLen)
	binary.LittleEndian.PutUint32(lens[4:], h.RawLen)
	return arrayext.Append[[HeaderSize]byte](arrayext.Append[[8]byte](Magic, vf), lens)
}

// Compressed reports whether the payload is zstd compressed.
func (h Header) Compressed() bool { return h.Flags&FlagZstd != 0 }

// Size is the encoded length of the frame h describes.
func (h Header) Size() int {
	n := HeaderSize + int(h.StoredLen)
	if h.Flags&FlagCRC32 != 0 {
		n += CRCSize
	}
	return n
}

// ParseHeader decodes and validates a serialized header.
func ParseHeader(b [HeaderSize]byte) (Header, error) {
	magic, rest := arrayext.SplitAt[[4]byte, [12]byte](b)
	if magic != Magic {
		return Header{}, ErrBadMagic
	}
	vf, lens := arrayext.SplitAt[[4]byte, [8]byte](rest)
	h := Header{
		Version:   binary.LittleEndian.Uint16(vf[0:]),
		Flags:     binary.LittleEndian.Uint16(vf[2:]),
		StoredLen: binary.LittleEndian.Uint32(lens[0:]),
		RawLen:    binary.LittleEndian.Uint32(lens[4:]),
	}
	if h.Version != VersionV1 {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if unknown := h.Flags &^ knownFlags; unknown != 0 {
		return Header{}, fmt.Errorf("%w: 0x%04x", ErrUnknownFlags, unknown)
	}
	return h, nil
}
