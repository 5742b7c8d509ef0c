package cli

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stuartcmehrens/file-stats/internal/filestats"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()

	cmd := NewCommand("test")
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	return cmd.Execute()
}

func TestCommandRejectsUnknownFormat(t *testing.T) {
	err := execute(t, "--format", "xml", ".")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestCommandRejectsNegativeDepth(t *testing.T) {
	if err := execute(t, "--depth", "-1", "."); err == nil {
		t.Fatal("expected error for negative depth")
	}
}

func TestCommandRejectsBadMinSize(t *testing.T) {
	if err := execute(t, "--min-size", "lots", "."); err == nil {
		t.Fatal("expected error for unparseable min-size")
	}
}

func TestCommandRejectsBadPattern(t *testing.T) {
	if err := execute(t, "--include", "[oops", t.TempDir()); err == nil {
		t.Fatal("expected error for invalid glob pattern")
	}
}

func TestCommandMissingRoot(t *testing.T) {
	err := execute(t, filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, filestats.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestCommandDefaults(t *testing.T) {
	cmd := NewCommand("test")

	if got := cmd.Flags().Lookup("format").DefValue; got != "text" {
		t.Errorf("format default = %q, want text", got)
	}

	if got := cmd.Flags().Lookup("exclude").DefValue; got != "[.git,node_modules]" {
		t.Errorf("exclude default = %q", got)
	}

	if got := cmd.Flags().Lookup("top").DefValue; got != "10" {
		t.Errorf("top default = %q, want 10", got)
	}
}
