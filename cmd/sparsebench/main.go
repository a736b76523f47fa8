// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

// Command sparsebench inspects and benchmarks the sparsekit CSR kernels.
//
// Usage:
//
//	sparsebench info
//	sparsebench bench --rows 100000 --cols 1024 --density 0.01 --kind float32
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sparsebench",
		Short:         "Inspect and benchmark sparsekit CSR reduction kernels",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newInfoCmd(), newBenchCmd())
	return root
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
