package filestats

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charlievieth/fastwalk"
)

// ErrNotFound indicates the root path does not exist.
var ErrNotFound = errors.New("root path not found")

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Hooks carries optional callbacks invoked during a scan.
type Hooks struct {
	// Progress is invoked periodically with the running file and byte
	// counts. May be nil.
	Progress func(files, bytes int64)
	// Warn is invoked once per skipped unreadable path. May be nil.
	// Invocations may come from multiple goroutines concurrently.
	Warn func(path string, err error)
}

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	relPath := strings.TrimPrefix(path, root)

	relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
	if relPath == "" {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.mu.Lock()

				files := c.fileCount
				bytes := c.totalBytes
				c.mu.Unlock()
				hook(files, bytes)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Run scans opt.Path and returns aggregated file statistics.
//
// The root may be a regular file or a directory. Directories are walked
// in parallel with fastwalk; symbolic links are not followed. Files are
// filtered by opt.Include, opt.Exclude, opt.Depth and opt.MinSize, then
// analyzed and accumulated. Unreadable paths are reported via
// hooks.Warn and counted, but never abort the scan.
//
// The walk can be cancelled via ctx.
func Run(ctx context.Context, opt Options, hooks Hooks) (*Summary, error) {
	log := logger{enabled: opt.Debug}

	if opt.Path == "" {
		opt.Path = "."
	}

	// Normalize to native format to handle both separator styles
	opt.Path = filepath.Clean(opt.Path)

	rootInfo, err := os.Lstat(opt.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, opt.Path)
		}

		return nil, fmt.Errorf("accessing path %q: %w", opt.Path, err)
	}

	include, err := compilePatterns(opt.Include)
	if err != nil {
		return nil, err
	}

	exclude, err := compilePatterns(opt.Exclude)
	if err != nil {
		return nil, err
	}

	if opt.TopN <= 0 {
		opt.TopN = 10
	}

	collector := newCollector(opt.TopN)

	warn := func(path string, err error) {
		collector.addSkipped()
		log.printf("[debug]: skipping unreadable path %s: %v\n", path, err)

		if hooks.Warn != nil {
			hooks.Warn(path, err)
		}
	}

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, collector, hooks.Progress, DefaultProgressInterval)

	log.printf("[debug]: include patterns: %v\n", opt.Include)
	log.printf("[debug]: exclude patterns: %v\n", opt.Exclude)

	start := time.Now()

	if !rootInfo.IsDir() {
		scanOne(opt, rootInfo, include, exclude, collector, warn, log)
	} else if err := walk(ctx, opt, include, exclude, collector, warn, log); err != nil {
		return nil, err
	}

	summary := collector.finalize()

	log.printf("[debug]: analyzed %d files (%d skipped) in %v\n",
		summary.FileCount, summary.SkippedCount, time.Since(start))

	return summary, nil
}

// scanOne analyzes a root that is a single regular file, applying the
// same filters the walk would.
func scanOne(opt Options, info os.FileInfo, include, exclude *patternSet, c *collector, warn func(string, error), log logger) {
	if !info.Mode().IsRegular() {
		log.printf("[debug]: skipping non-regular root: %s\n", opt.Path)

		return
	}

	relPath := filepath.ToSlash(filepath.Base(opt.Path))

	if exclude.match(relPath) || (!include.empty() && !include.match(relPath)) {
		log.printf("[debug]: excluding file (pattern filter): %s\n", opt.Path)

		return
	}

	if info.Size() < opt.MinSize {
		return
	}

	rec, err := analyzeFile(opt.Path, relPath, info.Size())
	if err != nil {
		warn(opt.Path, err)

		return
	}

	c.add(rec)
}

// walk traverses the root directory with fastwalk, feeding every
// surviving regular file through the analyzer into the collector.
func walk(ctx context.Context, opt Options, include, exclude *patternSet, c *collector, warn func(string, error), log logger) error {
	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	return fastwalk.Walk(conf, opt.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			warn(path, err)

			return nil
		}

		// Check cancellation periodically
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if path == opt.Path {
			return nil
		}

		// Calculate current depth and check against limit
		currentDepth := calculateDepth(path, opt.Path)
		if opt.Depth > 0 && currentDepth > opt.Depth {
			if d.IsDir() {
				log.printf("[debug]: skipping directory (beyond depth %d): %s\n", opt.Depth, path)

				return filepath.SkipDir
			}

			return nil
		}

		relPath, relErr := filepath.Rel(opt.Path, path)
		if relErr != nil {
			relPath = path
		}

		relPath = filepath.ToSlash(relPath)

		if exclude.match(relPath) {
			if d.IsDir() {
				log.printf("[debug]: excluding directory: %s\n", relPath)

				return filepath.SkipDir
			}

			log.printf("[debug]: excluding file: %s\n", relPath)

			return nil
		}

		if d.IsDir() {
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if !include.empty() && !include.match(relPath) {
			log.printf("[debug]: excluding file (include filter): %s\n", relPath)

			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			warn(path, err)

			return nil
		}

		if fileInfo.Size() < opt.MinSize {
			return nil
		}

		rec, err := analyzeFile(path, relPath, fileInfo.Size())
		if err != nil {
			warn(path, err)

			return nil
		}

		c.add(rec)

		return nil
	})
}
