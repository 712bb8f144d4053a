// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "xtalgraph",
		Short:         "Group unit cells by lattice compatibility and infer their symmetry",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newGroupCmd())

	return root
}
