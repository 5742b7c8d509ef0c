package filestats

import (
	"sort"
	"sync"
)

// FileRecord holds the metrics computed for a single analyzed file.
type FileRecord struct {
	// Path is the file path, relative to the scan root, in slash form.
	Path string
	// Size is the file size in bytes, taken from filesystem metadata.
	Size int64
	// Ext is the file extension including the leading dot, possibly empty.
	Ext string
	// Lines is the number of lines in the file. Only meaningful when
	// Binary is false.
	Lines int64
	// Binary indicates the content could not be decoded as text.
	Binary bool
}

// ExtStat represents statistics for a file extension.
type ExtStat struct {
	// Count is the number of files with this extension.
	Count int64 `json:"count"`
	// Size is the cumulative size in bytes.
	Size int64 `json:"size"`
	// Lines is the cumulative line count of text files.
	Lines int64 `json:"lines"`
}

// FileRef identifies a single file and its size.
type FileRef struct {
	// Path is the file path relative to the scan root.
	Path string `json:"path"`
	// Size is the size in bytes.
	Size int64 `json:"size"`
}

// Summary holds the finalized aggregate statistics for one scan.
type Summary struct {
	// FileCount is the total number of files analyzed.
	FileCount int64 `json:"file_count"`
	// TotalBytes is the cumulative size of all analyzed files.
	TotalBytes int64 `json:"total_bytes"`
	// TotalLines is the cumulative line count of all text files.
	TotalLines int64 `json:"total_lines"`
	// BinaryCount is the number of files classified as binary.
	BinaryCount int64 `json:"binary_count"`
	// ExtStats maps file extensions to their statistics.
	ExtStats map[string]ExtStat `json:"ext_stats"`
	// TopFiles contains the N largest files, largest first.
	TopFiles []FileRef `json:"top_files"`
	// Largest references the single largest file, if any.
	Largest *FileRef `json:"largest,omitempty"`
	// Smallest references the single smallest file, if any.
	Smallest *FileRef `json:"smallest,omitempty"`
	// SkippedCount is the number of unreadable paths skipped.
	SkippedCount int64 `json:"skipped_count"`
	// TopN is the number of top results tracked.
	TopN int `json:"top_n"`
}

// Options configures a scan.
type Options struct {
	// Path is the root file or directory to analyze.
	Path string
	// Include contains glob patterns; when non-empty, only matching
	// files are analyzed.
	Include []string
	// Exclude contains glob patterns for files and directories to skip.
	Exclude []string
	// MinSize is the minimum file size in bytes.
	MinSize int64
	// TopN is the number of largest files to track.
	TopN int
	// Depth is the maximum traversal depth (0=unlimited).
	Depth int
	// Format is the output format (text or json).
	Format string
	// Debug indicates whether debug output is enabled.
	Debug bool
}

// collector aggregates FileRecords from concurrent fastwalk callbacks
// using a mutex. Accumulation is associative and order-independent: the
// same set of records produces the same Summary regardless of the order
// in which they arrive or how they are partitioned across collectors.
type collector struct {
	mu       sync.Mutex // Protect concurrent access
	topN     int
	extStats map[string]ExtStat
	files    []FileRef
	smallest *FileRef

	fileCount   int64
	totalBytes  int64
	totalLines  int64
	binaryCount int64
	skipped     int64
}

// newCollector creates a collector tracking the topN largest files.
func newCollector(topN int) *collector {
	return &collector{
		topN:     topN,
		extStats: make(map[string]ExtStat),
		files:    make([]FileRef, 0),
	}
}

// addSkipped increments the skipped-path counter.
func (c *collector) addSkipped() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skipped++
}

// add records one analyzed file. Safe for concurrent use since fastwalk
// calls back from multiple goroutines.
func (c *collector) add(rec FileRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileCount++
	c.totalBytes += rec.Size

	if rec.Binary {
		c.binaryCount++
	} else {
		c.totalLines += rec.Lines
	}

	stat := c.extStats[rec.Ext]
	stat.Count++
	stat.Size += rec.Size
	if !rec.Binary {
		stat.Lines += rec.Lines
	}
	c.extStats[rec.Ext] = stat

	ref := FileRef{Path: rec.Path, Size: rec.Size}

	// Collect all files, sorted and trimmed at finalize
	c.files = append(c.files, ref)

	if c.smallest == nil || lessRef(ref, *c.smallest) {
		c.smallest = &FileRef{Path: ref.Path, Size: ref.Size}
	}
}

// merge folds another collector's partial aggregate into this one.
// Both collectors must track the same topN.
func (c *collector) merge(other *collector) {
	other.mu.Lock()
	defer other.mu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileCount += other.fileCount
	c.totalBytes += other.totalBytes
	c.totalLines += other.totalLines
	c.binaryCount += other.binaryCount
	c.skipped += other.skipped

	for ext, stat := range other.extStats {
		merged := c.extStats[ext]
		merged.Count += stat.Count
		merged.Size += stat.Size
		merged.Lines += stat.Lines
		c.extStats[ext] = merged
	}

	c.files = append(c.files, other.files...)

	if other.smallest != nil && (c.smallest == nil || lessRef(*other.smallest, *c.smallest)) {
		c.smallest = &FileRef{Path: other.smallest.Path, Size: other.smallest.Size}
	}
}

// lessRef orders file references by size, breaking ties by path so that
// the ordering is total and the final Summary is deterministic.
func lessRef(a, b FileRef) bool {
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	return a.Path < b.Path
}

// finalize produces the final Summary from the collected data. The top N
// files are sorted largest first with ties broken by path.
func (c *collector) finalize() *Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.Slice(c.files, func(i, j int) bool {
		return lessRef(c.files[j], c.files[i])
	})

	topFiles := c.files
	if len(topFiles) > c.topN {
		topFiles = topFiles[:c.topN]
	}

	var largest, smallest *FileRef
	if len(topFiles) > 0 {
		largest = &FileRef{Path: topFiles[0].Path, Size: topFiles[0].Size}
	}
	if c.smallest != nil {
		smallest = &FileRef{Path: c.smallest.Path, Size: c.smallest.Size}
	}

	return &Summary{
		FileCount:    c.fileCount,
		TotalBytes:   c.totalBytes,
		TotalLines:   c.totalLines,
		BinaryCount:  c.binaryCount,
		ExtStats:     c.extStats,
		TopFiles:     topFiles,
		Largest:      largest,
		Smallest:     smallest,
		SkippedCount: c.skipped,
		TopN:         c.topN,
	}
}
