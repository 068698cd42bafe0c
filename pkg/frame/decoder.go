package frame

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/compress/zstd"

	"github.com/rawbytedev/fixedmem/pkg/slicen"
)

type Frame struct {
	Header  Header
	Payload []byte // aliases the input buffer unless the frame was compressed
}

// Decoder reads frames out of a byte slice. Raw payloads are returned
// without copying. A Decoder is not safe for concurrent use.
type Decoder struct {
	Opts Options
	zdec *zstd.Decoder
}

func NewDecoder(opts Options) *Decoder {
	return &Decoder{Opts: opts}
}

func (d *Decoder) decompressor() (*zstd.Decoder, error) {
	if d.zdec == nil {
		dec, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(uint64(d.Opts.maxPayload())))
		if err != nil {
			return nil, err
		}
		d.zdec = dec
	}
	return d.zdec, nil
}

// Decode decodes the frame at the start of buf. Bytes after the frame are
// ignored.
func (d *Decoder) Decode(buf []byte) (Frame, error) {
	f, _, err := d.Next(buf)
	return f, err
}

// Next decodes the frame at the start of buf and returns the bytes that
// follow it.
func (d *Decoder) Next(buf []byte) (Frame, []byte, error) {
	view, err := slicen.New(buf, HeaderSize)
	if err != nil {
		return Frame{}, buf, fmt.Errorf("%w: %d bytes: %w", ErrShortFrame, len(buf), err)
	}
	h, err := ParseHeader(*slicen.HeadAs[[HeaderSize]byte](view))
	if err != nil {
		return Frame{}, buf, err
	}
	limit := d.Opts.maxPayload()
	if int64(h.StoredLen) > limit || int64(h.RawLen) > limit {
		return Frame{}, buf, fmt.Errorf("%w: stored %d raw %d, limit %d", ErrPayloadTooLarge, h.StoredLen, h.RawLen, limit)
	}
	// pull the payload into the head; what remains in the tail is the next frame
	body, err := view.Widen(h.Size() - HeaderSize)
	if err != nil {
		return Frame{}, buf, fmt.Errorf("%w: want %d bytes, have %d: %w", ErrTruncated, h.Size()-HeaderSize, len(view.Tail()), err)
	}
	end := HeaderSize + int(h.StoredLen)
	payload := body.Head()[HeaderSize:end:end]
	if h.Flags&FlagCRC32 != 0 {
		want := binary.LittleEndian.Uint32(body.Head()[end:])
		if got := crc32.ChecksumIEEE(payload); got != want {
			return Frame{}, buf, fmt.Errorf("%w: got %08x, want %08x", ErrChecksum, got, want)
		}
	}

	if h.Compressed() {
		payload, err = d.inflate(payload, int(h.RawLen))
		if err != nil {
			return Frame{}, buf, err
		}
	} else if len(payload) != int(h.RawLen) {
		return Frame{}, buf, fmt.Errorf("%w: raw frame stores %d bytes, header says %d", ErrSizeMismatch, len(payload), h.RawLen)
	}
	return Frame{Header: h, Payload: payload}, body.Tail(), nil
}

func (d *Decoder) inflate(src []byte, rawLen int) ([]byte, error) {
	dec, err := d.decompressor()
	if err != nil {
		return nil, err
	}
	out, err := dec.DecodeAll(src, make([]byte, 0, inflateCap(len(src), rawLen)))
	if err != nil {
		return nil, fmt.Errorf("zstd payload: %w", err)
	}
	if len(out) != rawLen {
		return nil, fmt.Errorf("%w: inflated to %d bytes, header says %d", ErrSizeMismatch, len(out), rawLen)
	}
	return out, nil
}

// inflateCap sizes the initial decompression buffer. rawLen comes from an
// untrusted header, so it is bounded by a multiple of the compressed size and
// DecodeAll grows the buffer past that if the payload really is larger.
func inflateCap(srcLen, rawLen int) int {
	return min(rawLen, 8*srcLen)
}

// All decodes every frame in buf. buf must hold only whole frames.
func (d *Decoder) All(buf []byte) ([]Frame, error) {
	var frames []Frame
	for len(buf) > 0 {
		f, rest, err := d.Next(buf)
		if err != nil {
			return frames, fmt.Errorf("frame %d: %w", len(frames), err)
		}
		frames = append(frames, f)
		buf = rest
	}
	return frames, nil
}

// Close releases the decompressor, if one was created.
func (d *Decoder) Close() {
	if d.zdec != nil {
		d.zdec.Close()
		d.zdec = nil
	}
}
