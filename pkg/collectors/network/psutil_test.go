package network

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/danpilch/ifstat/pkg/netdev"
	psnet "github.com/shirou/gopsutil/v3/net"
)

func TestPsutilSnapshot(t *testing.T) {
	p := NewPsutil(nil)
	p.counters = func(context.Context) ([]psnet.IOCountersStat, error) {
		return []psnet.IOCountersStat{
			{Name: "Ethernet", BytesRecv: 4096, BytesSent: 1024},
			{Name: "Loopback Pseudo-Interface 1", BytesRecv: 0, BytesSent: 0},
		}, nil
	}

	snap, err := p.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	want := netdev.Snapshot{
		"Ethernet":                    {RxBytes: 4096, TxBytes: 1024},
		"Loopback Pseudo-Interface 1": {},
	}
	if !reflect.DeepEqual(snap, want) {
		t.Fatalf("got %+v, want %+v", snap, want)
	}
}

func TestPsutilSnapshotError(t *testing.T) {
	p := NewPsutil(nil)
	boom := errors.New("GetIfTable failed")
	p.counters = func(context.Context) ([]psnet.IOCountersStat, error) {
		return nil, boom
	}
	if _, err := p.Snapshot(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
