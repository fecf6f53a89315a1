package proxy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xtracego/xtrace/internal/settings"
	"github.com/xtracego/xtrace/x11/atoms"
)

func TestPrefetchAtomsReadsNamesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atoms.list")
	if err := os.WriteFile(path, []byte("_NET_WM_NAME\n_NET_WM_STATE\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	t.Setenv("XTRACE_ATOMS_FILE", path)

	p := &Proxy{settings: settings.Settings{}}
	got := p.prefetchAtoms()
	if got[atoms.PredefinedMax+1] != "_NET_WM_NAME" {
		t.Fatalf("want first prefetched atom at %d, got %q", atoms.PredefinedMax+1, got[atoms.PredefinedMax+1])
	}
	if got[atoms.PredefinedMax+2] != "_NET_WM_STATE" {
		t.Fatalf("want second prefetched atom at %d, got %q", atoms.PredefinedMax+2, got[atoms.PredefinedMax+2])
	}
}

func TestPrefetchAtomsUnsetReturnsNil(t *testing.T) {
	t.Setenv("XTRACE_ATOMS_FILE", "")
	p := &Proxy{settings: settings.Settings{}}
	if got := p.prefetchAtoms(); got != nil {
		t.Fatalf("want nil with no file configured, got %v", got)
	}
}
