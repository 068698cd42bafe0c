package frame

import (
	"math"

	"github.com/klauspost/compress/zstd"
)

type Options struct {
	Compress   bool              // zstd compress payloads when it makes them smaller
	Checksum   bool              // append a CRC-32 of the stored payload
	Level      zstd.EncoderLevel // zero means zstd.SpeedDefault
	MaxPayload int               // zero means DefaultMaxPayload
}

// maxPayload is capped by the 32 bit length fields of the header.
func (o Options) maxPayload() int64 {
	switch {
	case o.MaxPayload <= 0:
		return DefaultMaxPayload
	case int64(o.MaxPayload) > math.MaxUint32:
		return math.MaxUint32
	}
	return int64(o.MaxPayload)
}

func (o Options) level() zstd.EncoderLevel {
	if o.Level == 0 {
		return zstd.SpeedDefault
	}
	return o.Level
}
