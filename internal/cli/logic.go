package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/stuartcmehrens/file-stats/internal/filestats"
)

func run(ctx context.Context, options filestats.Options) error {
	enableProgress := strings.ToLower(options.Format) != "json" &&
		!options.Debug &&
		isatty.IsTerminal(os.Stderr.Fd())

	hooks := filestats.Hooks{
		Warn: func(path string, err error) {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", path, err)
		},
	}

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		hooks.Progress = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	summary, err := filestats.Run(ctx, options, hooks)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	if summary.SkippedCount > 0 {
		fmt.Fprintf(os.Stderr, "warning: skipped %d unreadable path(s)\n", summary.SkippedCount)
	}

	switch strings.ToLower(options.Format) {
	case "json":
		return PrintJSON(summary, os.Stdout)
	case "text":
		return PrintText(summary, os.Stdout)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, options.Format)
	}
}
