package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rawbytedev/fixedmem/pkg/frame"
)

const defaultChunk = 1 << 20

func newPackCmd() *cobra.Command {
	var (
		compress bool
		level    int
		chunk    int
		output   string
	)
	cmd := &cobra.Command{
		Use:   "pack [file]",
		Short: "Split input into frames",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if chunk <= 0 || chunk > frame.DefaultMaxPayload {
				return fmt.Errorf("chunk must be in (0, %d]", frame.DefaultMaxPayload)
			}
			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()
			out, err := openOutput(output)
			if err != nil {
				return err
			}
			opts := frame.Options{Compress: compress, Level: zstd.EncoderLevelFromZstd(level)}
			n, err := pack(in, out, opts, chunk)
			if cerr := out.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			logger.Debug("packed", zap.Int("frames", n), zap.Bool("zstd", compress))
			return nil
		},
	}
	cmd.Flags().BoolVar(&compress, "zstd", false, "compress payloads with zstd")
	cmd.Flags().IntVar(&level, "level", 3, "zstd level")
	cmd.Flags().IntVar(&chunk, "chunk", defaultChunk, "payload bytes per frame")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// pack reads r in chunk sized pieces and writes one frame per piece.
func pack(r io.Reader, w io.Writer, opts frame.Options, chunk int) (int, error) {
	enc := frame.NewEncoder(opts)
	defer enc.Close()
	bw := bufio.NewWriter(w)
	buf := make([]byte, chunk)
	var out []byte
	frames := 0
	for {
		n, rerr := io.ReadFull(r, buf)
		if n > 0 {
			var err error
			if out, err = enc.AppendFrame(out[:0], buf[:n]); err != nil {
				return frames, err
			}
			if _, err = bw.Write(out); err != nil {
				return frames, err
			}
			frames++
		}
		if errors.Is(rerr, io.EOF) || errors.Is(rerr, io.ErrUnexpectedEOF) {
			break
		}
		if rerr != nil {
			return frames, rerr
		}
	}
	return frames, bw.Flush()
}
