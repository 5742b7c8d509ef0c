package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/stuartcmehrens/file-stats/internal/filestats"
)

// ErrUnsupportedFormat indicates an unknown output format was requested.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// PrintJSON outputs the summary in JSON format.
func PrintJSON(summary *filestats.Summary, writer io.Writer) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintText outputs the summary in human-readable text format. The
// rendering is deterministic: the same summary always produces the same
// bytes.
func PrintText(summary *filestats.Summary, writer io.Writer) error {
	extList := make([]string, 0, len(summary.ExtStats))
	for ext := range summary.ExtStats {
		extList = append(extList, ext)
	}

	// Most frequent extensions first, ties broken by size then name
	sort.Slice(extList, func(i, j int) bool {
		a, b := summary.ExtStats[extList[i]], summary.ExtStats[extList[j]]
		if a.Count != b.Count {
			return a.Count > b.Count
		}

		if a.Size != b.Size {
			return a.Size > b.Size
		}

		return extList[i] < extList[j]
	})

	if len(extList) > 0 {
		tbl := newTable("Extension", "Files", "Lines", "Size", "%")

		for _, ext := range extList {
			stat := summary.ExtStats[ext]

			name := ext
			if name == "" {
				name = `""`
			}

			tbl.AppendRow(table.Row{
				name,
				stat.Count,
				stat.Lines,
				humanize.IBytes(uint64(stat.Size)), //nolint:gosec // Size is always positive
				fmt.Sprintf("%.1f", percent(stat.Size, summary.TotalBytes)),
			})
		}

		fmt.Fprintln(writer, tbl.Render())
	}

	if len(summary.TopFiles) > 0 {
		tbl := newTable("#", "Largest files", "Size", "%")

		for i, ref := range summary.TopFiles {
			tbl.AppendRow(table.Row{
				i + 1,
				ref.Path,
				humanize.IBytes(uint64(ref.Size)), //nolint:gosec // Size is always positive
				fmt.Sprintf("%.1f", percent(ref.Size, summary.TotalBytes)),
			})
		}

		fmt.Fprintln(writer, tbl.Render())
	}

	fmt.Fprintf(writer, "Total files:\t%d\n", summary.FileCount)
	fmt.Fprintf(writer, "Total size:\t%s (%d bytes)\n",
		humanize.IBytes(uint64(summary.TotalBytes)), summary.TotalBytes) //nolint:gosec // Size is always positive
	fmt.Fprintf(writer, "Total lines:\t%d\n", summary.TotalLines)
	fmt.Fprintf(writer, "Binary files:\t%d\n", summary.BinaryCount)

	if summary.Largest != nil {
		fmt.Fprintf(writer, "Largest:\t%s (%s)\n",
			summary.Largest.Path, humanize.IBytes(uint64(summary.Largest.Size))) //nolint:gosec
	}

	if summary.Smallest != nil {
		fmt.Fprintf(writer, "Smallest:\t%s (%s)\n",
			summary.Smallest.Path, humanize.IBytes(uint64(summary.Smallest.Size))) //nolint:gosec
	}

	if summary.SkippedCount > 0 {
		fmt.Fprintf(writer, "Skipped:\t%d\n", summary.SkippedCount)
	}

	return nil
}

// newTable creates a table writer with the shared style. Numeric
// columns keep go-pretty's automatic right alignment.
func newTable(headers ...any) table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)

	row := make(table.Row, len(headers))
	copy(row, headers)
	tbl.AppendHeader(row)

	return tbl
}

// percent returns part as a percentage of total, 0 when total is 0.
func percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}

	return 100.0 * float64(part) / float64(total)
}
