package frame

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/compress/zstd"
)

// Encoder builds frames. The zero value encodes raw payloads with the
// default limits. An Encoder is not safe for concurrent use.
type Encoder struct {
	Opts Options
	zenc *zstd.Encoder
	buf  []byte // reused compression scratch
}

func NewEncoder(opts Options) *Encoder {
	return &Encoder{Opts: opts}
}

func (e *Encoder) compressor() (*zstd.Encoder, error) {
	if e.zenc == nil {
		enc, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(e.Opts.level()),
			zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		e.zenc = enc
	}
	return e.zenc, nil
}

// Encode returns payload as a single frame.
func (e *Encoder) Encode(payload []byte) ([]byte, error) {
	return e.AppendFrame(nil, payload)
}

// AppendFrame appends the frame for payload to dst.
func (e *Encoder) AppendFrame(dst, payload []byte) ([]byte, error) {
	if int64(len(payload)) > e.Opts.maxPayload() {
		return dst, fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, len(payload), e.Opts.maxPayload())
	}
	h := Header{Version: VersionV1, RawLen: uint32(len(payload))}
	stored := payload
	if e.Opts.Compress && len(payload) > 0 {
		enc, err := e.compressor()
		if err != nil {
			return dst, err
		}
		e.buf = enc.EncodeAll(payload, e.buf[:0])
		// keep the raw bytes unless compression pays for itself
		if len(e.buf) < len(payload) {
			stored = e.buf
			h.Flags |= FlagZstd
		}
	}
	h.StoredLen = uint32(len(stored))
	if e.Opts.Checksum {
		h.Flags |= FlagCRC32
	}

	hdr := h.Bytes()
	dst = append(dst, hdr[:]...)
	dst = append(dst, stored...)
	if e.Opts.Checksum {
		dst = binary.LittleEndian.AppendUint32(dst, crc32.ChecksumIEEE(stored))
	}
	return dst, nil
}

// Close releases the compressor, if one was created.
func (e *Encoder) Close() error {
	if e.zenc == nil {
		return nil
	}
	err := e.zenc.Close()
	e.zenc = nil
	return err
}
