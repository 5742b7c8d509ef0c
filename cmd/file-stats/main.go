// Package main provides the entry point for the file-stats CLI tool.
//
// The file-stats command scans a file or directory tree, computes
// per-file metrics (size, line count, binary classification) and prints
// an aggregate report as text or JSON.
//
// Exit codes: 0 success (including scans with skipped unreadable
// paths), 1 invalid arguments or output format, 2 root path not found.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/stuartcmehrens/file-stats/internal/cli"
	"github.com/stuartcmehrens/file-stats/internal/filestats"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := cli.NewCommand(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		if errors.Is(err, filestats.ErrNotFound) {
			os.Exit(2)
		}

		os.Exit(1)
	}
}
