// Package filestats provides file scanning and statistics aggregation.
//
// It walks a root path using fastwalk for parallel traversal, analyzes
// each regular file (size, line count, binary classification), and
// aggregates the results by file extension along with the largest and
// smallest files seen.
package filestats
