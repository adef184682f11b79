// Package cmd implements the ifstat command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/danpilch/ifstat/pkg/collectors"
	"github.com/danpilch/ifstat/pkg/collectors/network"
	"github.com/danpilch/ifstat/pkg/config"
	"github.com/danpilch/ifstat/pkg/debug"
	"github.com/danpilch/ifstat/pkg/netdev"
	"github.com/danpilch/ifstat/pkg/sampler"
	"github.com/danpilch/ifstat/pkg/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	interfaces       string
	all              bool
	loopback         bool
	hideZero         bool
	delay            float64
	count            int
	firstMeasurement float64
	source           string
	configPath       string
	logLevel         string
	debug            bool
	color            bool
	pprofAddr        string
	dumpRaw          bool
}

type app struct {
	opts   options
	stdout io.Writer
	stderr io.Writer
	// run is replaced in tests.
	run func(ctx context.Context, cfg *config.Config) error
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		return 1
	}
	return 0
}

// NewRootCmd builds the ifstat command.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	a.run = a.monitor
	return a.command()
}

func (a *app) command() *cobra.Command {
	info := version.Get()
	cmd := &cobra.Command{
		Use:   "ifstat [flags] [delay [count]]",
		Short: "Report network interface throughput",
		Long: `ifstat reports the receive and transmit rate of network interfaces,
one row per sampling interval, in KB per interval.

delay is the number of seconds between rows (default 1), count the number of
rows to print before exiting (default unlimited).`,
		Args:         cobra.MaximumNArgs(2),
		Version:      info.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), cfg)
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetVersionTemplate(info.Long())

	f := cmd.Flags()
	f.StringVarP(&a.opts.interfaces, "interfaces", "i", "", `interfaces to monitor, separated by commas (e.g., "eth0,lo")`)
	f.BoolVarP(&a.opts.all, "all", "a", false, "monitor all interfaces for which statistics are available")
	f.BoolVarP(&a.opts.loopback, "loopback", "l", false, "also monitor loopback interfaces")
	f.BoolVarP(&a.opts.hideZero, "hide-zero", "z", false, "hide interfaces with zero counters")
	f.Float64Var(&a.opts.delay, "delay", 1, "seconds between updates")
	f.IntVar(&a.opts.count, "count", 0, "number of updates before stopping (0 = unlimited)")
	f.Float64Var(&a.opts.firstMeasurement, "first-measurement", 0, "seconds before the first measurement (default same as delay)")
	f.StringVar(&a.opts.source, "source", network.SourceAuto, "counter source: auto, procfs, netstat or psutil")
	f.StringVar(&a.opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	f.StringVar(&a.opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	f.BoolVar(&a.opts.debug, "debug", false, "debug logging and source timing report")
	f.BoolVar(&a.opts.color, "color", false, "style the header when writing to a terminal")
	f.StringVar(&a.opts.pprofAddr, "pprof", "", "serve pprof on this address (e.g., localhost:6060)")
	f.BoolVar(&a.opts.dumpRaw, "dump-raw", false, "dump raw counters to stderr on every sample")

	cmd.AddCommand(newVersionCmd(a.stdout))
	return cmd
}

// resolveConfig layers the config file, explicitly set flags and positional arguments.
func (a *app) resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if a.opts.configPath != "" {
		cfg, err = config.Load(a.opts.configPath)
	} else {
		cfg, err = config.LoadOptional(config.DefaultPath())
	}
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("interfaces") {
		cfg.Interfaces = netdev.ParseNames(a.opts.interfaces)
	}
	if f.Changed("all") {
		cfg.All = a.opts.all
	}
	if f.Changed("loopback") {
		cfg.Loopback = a.opts.loopback
	}
	if f.Changed("hide-zero") {
		cfg.HideZero = a.opts.hideZero
	}
	if f.Changed("delay") {
		cfg.Delay = a.opts.delay
	}
	if f.Changed("count") {
		cfg.Count = a.opts.count
	}
	if f.Changed("first-measurement") {
		first := a.opts.firstMeasurement
		cfg.FirstMeasurement = &first
	}
	if f.Changed("source") {
		cfg.Source = a.opts.source
	}
	if f.Changed("log-level") {
		cfg.LogLevel = a.opts.logLevel
	}
	if a.opts.debug {
		cfg.LogLevel = logrus.DebugLevel.String()
	}
	if f.Changed("color") {
		cfg.Color = a.opts.color
	}

	if len(args) > 0 {
		if cfg.Delay, err = strconv.ParseFloat(args[0], 64); err != nil {
			return nil, fmt.Errorf("invalid delay %q: %w", args[0], err)
		}
	}
	if len(args) > 1 {
		if cfg.Count, err = strconv.Atoi(args[1]); err != nil {
			return nil, fmt.Errorf("invalid count %q: %w", args[1], err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *app) newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(a.stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// selectSource picks the configured source among those available on this platform.
func selectSource(cfg *config.Config, logger logrus.FieldLogger) (collectors.Source, error) {
	registry := collectors.NewRegistry()
	network.Register(registry, logger)

	name := cfg.Source
	if name == network.SourceAuto {
		name = network.DefaultSource()
	}
	src := registry.GetByName(name)
	if src == nil {
		return nil, fmt.Errorf("source %q is not available on this platform (available: %v)", name, registry.Names())
	}
	return src, nil
}

func (a *app) monitor(ctx context.Context, cfg *config.Config) error {
	logger := a.newLogger(cfg)

	src, err := selectSource(cfg, logger)
	if err != nil {
		return err
	}

	var timed *debug.TimedSource
	if a.opts.debug {
		timed = debug.NewTimedSource(src, logger)
		src = timed
	}

	if a.opts.pprofAddr != "" {
		stop, err := debug.StartPprofServer(a.opts.pprofAddr, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	s := sampler.New(src, a.stdout, logger)
	s.Selection = netdev.Selection{Names: cfg.Interfaces, All: cfg.All, Loopback: cfg.Loopback}
	s.HideZero = cfg.HideZero
	s.Delay = cfg.DelayDuration()
	s.FirstDelay = cfg.FirstDelay()
	s.Count = cfg.Count
	if cfg.Color {
		s.Reporter.HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	}
	if a.opts.dumpRaw {
		s.OnSample = func(snap netdev.Snapshot) {
			debug.DumpSnapshot(a.stderr, src.Name(), snap)
		}
	}

	logger.WithFields(logrus.Fields{
		"source":     src.Name(),
		"delay":      s.Delay,
		"first":      s.FirstDelay,
		"count":      s.Count,
		"interfaces": cfg.Interfaces,
	}).Debug("Starting sampler")

	err = s.Run(ctx)
	if timed != nil {
		debug.TimingReport(a.stderr, timed.Timing())
	}
	return err
}
