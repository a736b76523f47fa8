// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sparsekit/sparsekit/csr"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print detected CPU capability, supported kinds, and operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "capability:     %s\n", csr.CurrentName())
			fmt.Fprintf(out, "parallel grain: %d rows\n", csr.ParallelGrain())
			fmt.Fprintf(out, "gomaxprocs:     %d\n", runtime.GOMAXPROCS(0))
			fmt.Fprintf(out, "no-parallel:    %v (SPARSEKIT_NO_PARALLEL)\n", csr.NoParallelEnv())

			fmt.Fprintf(out, "kinds:          ")
			for i, k := range []csr.Kind{csr.KindFloat32, csr.KindFloat64} {
				if i > 0 {
					fmt.Fprint(out, ", ")
				}
				fmt.Fprintf(out, "%s (%d bytes)", k, k.Size())
			}
			fmt.Fprintln(out)

			fmt.Fprintf(out, "ops:            ")
			for i, op := range csr.Ops() {
				if i > 0 {
					fmt.Fprint(out, ", ")
				}
				fmt.Fprint(out, op)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
