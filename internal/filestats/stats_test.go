package filestats

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

func testRecords() []FileRecord {
	records := make([]FileRecord, 0, 30)

	for i := 0; i < 10; i++ {
		records = append(records,
			FileRecord{Path: fmt.Sprintf("src/a%d.go", i), Size: int64(100 + i), Ext: ".go", Lines: int64(10 + i)},
			FileRecord{Path: fmt.Sprintf("docs/b%d.md", i), Size: int64(50 + i), Ext: ".md", Lines: int64(5 + i)},
			FileRecord{Path: fmt.Sprintf("bin/c%d", i), Size: int64(1000 + i), Ext: "", Binary: true},
		)
	}

	return records
}

func TestCollectorOrderIndependence(t *testing.T) {
	records := testRecords()

	reference := newCollector(5)
	for _, rec := range records {
		reference.add(rec)
	}

	want := reference.finalize()

	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 5; run++ {
		shuffled := make([]FileRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		c := newCollector(5)
		for _, rec := range shuffled {
			c.add(rec)
		}

		if got := c.finalize(); !reflect.DeepEqual(got, want) {
			t.Errorf("run %d: shuffled aggregation differs:\ngot  %+v\nwant %+v", run, got, want)
		}
	}
}

func TestCollectorMergePartials(t *testing.T) {
	records := testRecords()

	reference := newCollector(5)
	for _, rec := range records {
		reference.add(rec)
	}

	want := reference.finalize()

	// Split the records across two collectors and merge
	left := newCollector(5)
	right := newCollector(5)

	for i, rec := range records {
		if i%2 == 0 {
			left.add(rec)
		} else {
			right.add(rec)
		}
	}

	right.addSkipped()
	left.merge(right)

	got := left.finalize()

	want.SkippedCount = 1
	if !reflect.DeepEqual(got, want) {
		t.Errorf("merged aggregation differs:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestCollectorInvariants(t *testing.T) {
	records := testRecords()

	c := newCollector(3)
	for _, rec := range records {
		c.add(rec)
	}

	summary := c.finalize()

	if summary.FileCount != int64(len(records)) {
		t.Errorf("FileCount = %d, want %d", summary.FileCount, len(records))
	}

	var extTotal int64
	for _, stat := range summary.ExtStats {
		extTotal += stat.Count
	}

	if extTotal != summary.FileCount {
		t.Errorf("per-extension counts sum to %d, want %d", extTotal, summary.FileCount)
	}

	if len(summary.TopFiles) != 3 {
		t.Fatalf("TopFiles length = %d, want 3", len(summary.TopFiles))
	}

	for i := 1; i < len(summary.TopFiles); i++ {
		if summary.TopFiles[i].Size > summary.TopFiles[i-1].Size {
			t.Errorf("TopFiles not sorted largest first at index %d", i)
		}
	}

	if summary.Largest == nil || summary.Largest.Path != "bin/c9" {
		t.Errorf("Largest = %+v, want bin/c9", summary.Largest)
	}

	if summary.Smallest == nil || summary.Smallest.Path != "docs/b0.md" {
		t.Errorf("Smallest = %+v, want docs/b0.md", summary.Smallest)
	}

	if summary.BinaryCount != 10 {
		t.Errorf("BinaryCount = %d, want 10", summary.BinaryCount)
	}
}

func TestCollectorEmpty(t *testing.T) {
	summary := newCollector(10).finalize()

	if summary.FileCount != 0 || summary.TotalBytes != 0 || summary.TotalLines != 0 {
		t.Errorf("empty summary has nonzero totals: %+v", summary)
	}

	if summary.Largest != nil || summary.Smallest != nil {
		t.Error("empty summary should have no largest/smallest references")
	}

	if len(summary.TopFiles) != 0 {
		t.Errorf("TopFiles length = %d, want 0", len(summary.TopFiles))
	}
}
