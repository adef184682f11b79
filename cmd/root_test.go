package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/danpilch/ifstat/pkg/collectors/network"
	"github.com/danpilch/ifstat/pkg/config"
	"github.com/danpilch/ifstat/pkg/version"
)

// parse runs the root command with args and returns the resolved config
// without starting the sampler.
func parse(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	a := &app{stdout: &stdout, stderr: &stderr}
	var got *config.Config
	a.run = func(_ context.Context, cfg *config.Config) error {
		got = cfg
		return nil
	}

	cmd := a.command()
	cmd.SetArgs(args)
	err := cmd.Execute()
	return got, err
}

func TestCommandLineOptions(t *testing.T) {
	cfg, err := parse(t, "-i", "lo,eth0", "--first-measurement", "0.5", "--delay=1.0", "--count=10")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !reflect.DeepEqual(cfg.Interfaces, []string{"lo", "eth0"}) {
		t.Errorf("Interfaces = %v", cfg.Interfaces)
	}
	if cfg.FirstDelay() != 500*time.Millisecond {
		t.Errorf("FirstDelay = %v", cfg.FirstDelay())
	}
	if cfg.DelayDuration() != time.Second {
		t.Errorf("Delay = %v", cfg.DelayDuration())
	}
	if cfg.Count != 10 {
		t.Errorf("Count = %d", cfg.Count)
	}
}

func TestPositionalDelayAndCount(t *testing.T) {
	cfg, err := parse(t, "-a", "-l", "-z", "2.5", "3")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !cfg.All || !cfg.Loopback || !cfg.HideZero {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.Delay != 2.5 || cfg.Count != 3 {
		t.Errorf("Delay = %v, Count = %d", cfg.Delay, cfg.Count)
	}
	if cfg.FirstDelay() != 2500*time.Millisecond {
		t.Errorf("FirstDelay should default to delay, got %v", cfg.FirstDelay())
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if cfg.Delay != 1 || cfg.Count != 0 || cfg.Source != network.SourceAuto || cfg.Interfaces != nil {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad delay", []string{"soon"}, "invalid delay"},
		{"bad count", []string{"1", "many"}, "invalid count"},
		{"zero delay", []string{"0"}, "delay must be positive"},
		{"too many args", []string{"1", "2", "3"}, "accepts at most 2 arg"},
		{"unknown source", []string{"--source", "snmp"}, "unknown source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("got %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestConfigFileWithFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ifstat.yaml")
	content := "interfaces: [wlan0]\nhide_zero: true\ndelay: 5\ncount: 7\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := parse(t, "--config", path, "--count=2")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !reflect.DeepEqual(cfg.Interfaces, []string{"wlan0"}) || !cfg.HideZero || cfg.Delay != 5 {
		t.Errorf("config file values lost: %+v", cfg)
	}
	if cfg.Count != 2 {
		t.Errorf("flag should override file count, got %d", cfg.Count)
	}
}

func TestDebugRaisesLogLevel(t *testing.T) {
	cfg, err := parse(t, "--debug")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestVersionCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(stdout.String(), "ifstat "+version.Version) || !strings.Contains(stdout.String(), "Build info:") {
		t.Fatalf("unexpected version output:\n%s", stdout.String())
	}
}

func TestSelectSource(t *testing.T) {
	cfg := config.Default()
	src, err := selectSource(cfg, nil)
	if err != nil {
		t.Fatalf("selectSource: %v", err)
	}
	if src.Name() != network.DefaultSource() {
		t.Fatalf("auto picked %q, want %q", src.Name(), network.DefaultSource())
	}

	cfg.Source = network.SourcePsutil
	if src, err = selectSource(cfg, nil); err != nil || src.Name() != network.SourcePsutil {
		t.Fatalf("psutil: %v, %v", src, err)
	}
}
