//go:build linux

package network

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danpilch/ifstat/pkg/netdev"
)

func writeNetDev(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dev")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcFSSnapshot(t *testing.T) {
	path := writeNetDev(t, `Inter-|   Receive                                                |  Transmit
 face |bytes    packets errs drop fifo frame compressed multicast|bytes    packets errs drop fifo colls carrier compressed
    lo:    1000      10    0    0    0     0          0         0     1000      10    0    0    0     0       0          0
  eth0: 5242880    4000    0    0    0     0          0         0  1048576    2000    0    0    0     0       0          0
`)

	p := NewProcFS(path, nil)
	snap, err := p.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if got := snap["eth0"]; got != (netdev.Counters{RxBytes: 5242880, TxBytes: 1048576}) {
		t.Fatalf("eth0 = %+v", got)
	}
	if len(snap) != 2 {
		t.Fatalf("expected 2 interfaces, got %d", len(snap))
	}
}

func TestProcFSSnapshotParseError(t *testing.T) {
	path := writeNetDev(t, "h1\nh2\neth0 1 2 3\n")

	_, err := NewProcFS(path, nil).Snapshot(context.Background())
	if !errors.Is(err, netdev.ErrNoSeparator) {
		t.Fatalf("expected ErrNoSeparator, got %v", err)
	}
}

func TestProcFSSnapshotMissingFile(t *testing.T) {
	_, err := NewProcFS(filepath.Join(t.TempDir(), "missing"), nil).Snapshot(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestProcFSSnapshotCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProcFS("", nil).Snapshot(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestProcFSDefaultPath(t *testing.T) {
	if p := NewProcFS("", nil); p.Path != ProcNetDev {
		t.Fatalf("Path = %q", p.Path)
	}
}
