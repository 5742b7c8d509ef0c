// Package cli implements the file-stats command-line interface.
package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/stuartcmehrens/file-stats/internal/filestats"
)

// DefaultExcludes contains the default exclusion patterns.
//
//nolint:gochecknoglobals // Config constant
var DefaultExcludes = []string{".git", "node_modules"}

// allowedFormats lists the supported output formats.
//
//nolint:gochecknoglobals // Config constant
var allowedFormats = []string{"text", "json"}

// NewCommand builds the root command with the given version.
func NewCommand(version string) *cobra.Command {
	var (
		options    filestats.Options
		minSizeStr string
	)

	cmd := &cobra.Command{
		Use:   "file-stats [path]",
		Short: "Scan files and report aggregate statistics",
		Long: heredoc.Doc(`
			file-stats scans a file or directory tree and reports aggregate
			statistics: file counts, sizes and line counts, broken down by
			file extension, plus the largest and smallest files found.

			Files whose content is not valid text are classified as binary
			and carry no line count. Unreadable files and directories are
			skipped with a warning; they never abort the scan.

			Examples:
			  file-stats .
			  file-stats --include '*.go' --exclude vendor src/
			  file-stats --format json --min-size 1KB /var/log
		`),
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(allowedFormats, strings.ToLower(options.Format)) {
				return fmt.Errorf("%w: %q (must be one of %v)",
					ErrUnsupportedFormat, options.Format, allowedFormats)
			}

			if options.Depth < 0 {
				return errors.New("depth cannot be negative")
			}

			// Parse minSize string to bytes
			size, err := humanize.ParseBytes(minSizeStr)
			if err != nil {
				return fmt.Errorf("invalid min-size: %w", err)
			}

			options.MinSize = int64(size) //nolint:gosec // Size conversion from humanize is safe

			if len(args) == 0 {
				options.Path = "."
			} else {
				options.Path = args[0]
			}

			return run(cmd.Context(), options)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&options.Include, "include", "i", nil,
		"Glob patterns of files to include (e.g., '*.go,docs/**')")
	flags.StringSliceVarP(&options.Exclude, "exclude", "e", DefaultExcludes,
		"Glob patterns of files and directories to exclude")
	flags.StringVarP(&options.Format, "format", "f", "text",
		"Output format: text or json")
	flags.IntVarP(&options.Depth, "depth", "d", 0,
		"Maximum traversal depth (0=unlimited)")
	flags.StringVar(&minSizeStr, "min-size", "0B",
		"Minimum file size (e.g., 1KB)")
	flags.IntVarP(&options.TopN, "top", "t", 10,
		"Number of largest files to display")
	flags.BoolVar(&options.Debug, "debug", false,
		"Enable debug output")
	flags.SortFlags = false

	return cmd
}
