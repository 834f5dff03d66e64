// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloudeng.io/cmdutil"
	"cloudeng.io/errors"
	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cosnicolaou/zstdgo"
)

var (
	flagInfo           bool
	flagOutput         string
	flagPrintSkippable bool
	flagVerbose        bool
	flagMaxWindowSize  uint64
)

func newLogger(verbose bool) *zap.SugaredLogger {
	if !verbose {
		return zap.NewNop().Sugar()
	}
	l, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zstdgo <input-file>",
		Short: "decompress a Zstandard (RFC 8878) file",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	flags := cmd.Flags()
	flags.BoolVarP(&flagInfo, "info", "i", false, "dump frame headers instead of decoding")
	flags.StringVarP(&flagOutput, "output", "o", "", "write decoded output to this file instead of stdout")
	flags.BoolVarP(&flagPrintSkippable, "print-skippable", "p", false, "include skippable frame payloads in the output")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "log per-frame progress and non-fatal warnings")
	flags.Uint64Var(&flagMaxWindowSize, "max-window-size", zstdgo.DefaultMaxWindowSize, "reject frames whose window size exceeds this many bytes")
	return cmd
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	cmdutil.HandleSignals(cancel, os.Interrupt)

	log := newLogger(flagVerbose)
	defer log.Sync() //nolint:errcheck

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	opts := []zstdgo.Option{
		zstdgo.WithMaxWindowSize(flagMaxWindowSize),
		zstdgo.WithIncludeSkippablePayloads(flagPrintSkippable),
	}

	if flagInfo {
		return printInfo(data, opts, log)
	}
	return decode(ctx, data, opts, log)
}

func printInfo(data []byte, opts []zstdgo.Option, log *zap.SugaredLogger) error {
	it := zstdgo.NewIterator(data, opts...)
	errs := &errors.M{}
	n := 0
	for {
		frame, err := it.Next()
		if err != nil {
			errs.Append(err)
			break
		}
		if frame == nil {
			break
		}
		n++
		if h, ok := frame.Header(); ok {
			fmt.Printf("frame %d: window=%d checksum=%v\n", n, h.WindowSize, h.ContentChecksumFlag)
			log.Infow("decoded frame header", "frame", n, "windowSize", h.WindowSize)
		} else {
			fmt.Printf("frame %d: skippable\n", n)
		}
	}
	return errs.Err()
}

func decode(ctx context.Context, data []byte, opts []zstdgo.Option, log *zap.SugaredLogger) error {
	out, bar, writerDone, err := openOutput(flagOutput, int64(len(data)))
	if err != nil {
		return err
	}
	defer writerDone()

	errs := &errors.M{}
	it := zstdgo.NewIterator(data, opts...)
	n := 0
	for {
		select {
		case <-ctx.Done():
			errs.Append(ctx.Err())
			return errs.Err()
		default:
		}
		frame, err := it.Next()
		if err != nil {
			errs.Append(err)
			break
		}
		if frame == nil {
			break
		}
		n++
		payload, err := frame.Decode()
		if err != nil {
			log.Warnw("frame checksum mismatch", "frame", n, "error", err)
			errs.Append(err)
		}
		if _, ok := frame.Header(); ok || flagPrintSkippable {
			if _, werr := out.Write(payload); werr != nil {
				errs.Append(werr)
				break
			}
			if bar != nil {
				bar.Add(len(payload)) //nolint:errcheck
			}
		}
		log.Infow("decoded frame", "frame", n, "bytes", len(payload))
	}
	return errs.Err()
}

// openOutput returns the writer decode should copy into: stdout directly,
// or a created file paired with a progress bar that tracks bytes written
// to it.
func openOutput(name string, size int64) (io.Writer, *progressbar.ProgressBar, func(), error) {
	if name == "" {
		return os.Stdout, nil, func() {}, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, nil, nil, err
	}
	bar := progressbar.NewOptions64(size,
		progressbar.OptionSetBytes64(size),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(true))
	return f, bar, func() { f.Close() }, nil
}
