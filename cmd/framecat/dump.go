package main

import (
	"bufio"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rawbytedev/fixedmem/pkg/frame"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type frameInfo struct {
	Index      int    `json:"index"`
	Offset     int    `json:"offset"`
	Version    uint16 `json:"version"`
	Flags      uint16 `json:"flags"`
	Compressed bool   `json:"compressed"`
	Stored     uint32 `json:"stored"`
	Raw        uint32 `json:"raw"`
}

func newDumpCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Print the header of every frame",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}
			n, err := dump(data, cmd.OutOrStdout(), asJSON)
			logger.Debug("dumped", zap.Int("frames", n), zap.Int("bytes", len(data)))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "one JSON object per frame")
	return cmd
}

func newUnpackCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "unpack [file]",
		Short: "Write the concatenated payloads of every frame",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}
			return unpack(data, func() (io.WriteCloser, error) { return openOutput(output) })
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// dump writes one line per frame in data and returns the number of frames.
func dump(data []byte, w io.Writer, asJSON bool) (int, error) {
	dec := frame.NewDecoder(frame.Options{})
	defer dec.Close()
	bw := bufio.NewWriter(w)
	stream := json.NewEncoder(bw)
	n, off := 0, 0
	for rest := data; len(rest) > 0; n++ {
		f, next, err := dec.Next(rest)
		if err != nil {
			_ = bw.Flush()
			return n, fmt.Errorf("frame %d at offset %d: %w", n, off, err)
		}
		info := frameInfo{
			Index:      n,
			Offset:     off,
			Version:    f.Header.Version,
			Flags:      f.Header.Flags,
			Compressed: f.Header.Compressed(),
			Stored:     f.Header.StoredLen,
			Raw:        f.Header.RawLen,
		}
		if asJSON {
			err = stream.Encode(info)
		} else {
			_, err = fmt.Fprintf(bw, "frame %d: offset=%d version=%d flags=0x%04x stored=%d raw=%d\n",
				info.Index, info.Offset, info.Version, info.Flags, info.Stored, info.Raw)
		}
		if err != nil {
			return n, err
		}
		off += len(rest) - len(next)
		rest = next
	}
	return n, bw.Flush()
}

// unpack decodes every frame in data before calling open, so a corrupt input
// never truncates an existing output file.
func unpack(data []byte, open func() (io.WriteCloser, error)) error {
	dec := frame.NewDecoder(frame.Options{})
	defer dec.Close()
	frames, err := dec.All(data)
	if err != nil {
		return err
	}
	out, err := open()
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(out)
	for _, f := range frames {
		if _, err = bw.Write(f.Payload); err != nil {
			break
		}
	}
	if err == nil {
		err = bw.Flush()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}
