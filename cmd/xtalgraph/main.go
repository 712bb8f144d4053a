// SPDX-License-Identifier: MIT

// Command xtalgraph groups crystal unit cells into compatible sets and
// proposes a point group for each set.
//
//	xtalgraph group --input observations.yaml --format json
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
