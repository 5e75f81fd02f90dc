package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	ddns "github.com/Travis-Britz/mbddns"
	"github.com/spf13/pflag"
)

var version = "dev"

func main() {
	// run reports every failure itself; only the exit status is left to set
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run is main without the process exit, so tests can drive it.
// extra options are appended after the ones derived from the config file.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer, extra ...ddns.Option) error {
	fs := pflag.NewFlagSet("mbddns", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.BoolP("verbose", "v", false, "Enable debug logging to stderr")
	timeout := fs.Duration("timeout", ddns.DefaultTimeout, "Timeout for each update request")
	metricsFile := fs.String("metrics-file", "", "Write Prometheus metrics for this run to `path`")
	setup := fs.Bool("setup", false, "Interactively create a config file and exit")
	showVersion := fs.Bool("version", false, "Print the version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, `mbddns - Mythic Beasts dynamic DNS update client

Usage:
  mbddns [flags] [config_path]

config_path is used when it exists; otherwise %s is read.
The config file must not be readable by other users.

Flags:
`, ddns.DefaultConfigPath)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Fprintln(stdout, "mbddns", version)
		return nil
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if *setup {
		path := ddns.DefaultConfigPath
		switch fs.NArg() {
		case 0:
		case 1:
			path = fs.Arg(0)
		default:
			err := fmt.Errorf("--setup takes at most one config path, got %d", fs.NArg())
			fmt.Fprintln(stderr, err)
			fs.Usage()
			return err
		}
		if err := runSetup(path, stdin, stdout, logger); err != nil {
			fmt.Fprintf(stderr, "Setup failed: %s\n", err)
			return err
		}
		return nil
	}

	path := ddns.LocateConfig(fs.Args())
	logger.Debug("using config file", "path", path)
	cfg, err := ddns.LoadConfig(path)
	if err != nil {
		reportConfigError(stderr, logger, err)
		return err
	}
	logger.Debug("config is valid", "domain", cfg.Domain, "ipv4", cfg.IPv4, "ipv6", cfg.IPv6)

	var families []ddns.Family
	for _, f := range ddns.Families {
		if cfg.Enabled(f) {
			families = append(families, f)
		}
	}
	options := append([]ddns.Option{
		ddns.UsingMythicBeasts(cfg.KeyID, cfg.Secret),
		ddns.UsingFamilies(families...),
		ddns.UsingTimeout(*timeout),
		ddns.WithLogger(logger),
	}, extra...)
	client, err := ddns.New(cfg.Domain, options...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result := client.Run(ctx)
	err = ddns.Report(stdout, stderr, result)

	if *metricsFile != "" {
		if merr := ddns.WriteMetricsFile(*metricsFile, result, time.Now()); merr != nil {
			fmt.Fprintf(stderr, "Failed writing metrics: %s\n", merr)
			err = errors.Join(err, merr)
		}
	}
	return err
}

func reportConfigError(stderr io.Writer, logger *slog.Logger, err error) {
	var (
		perm    *ddns.PermissionError
		parse   *ddns.ParseError
		invalid *ddns.ValidationError
	)
	switch {
	case errors.As(err, &perm):
		logger.Debug("insecure config file", "path", perm.Path, "mode", perm.Mode.String())
		fmt.Fprintln(stderr, "Config file is world-readable; change its permissions and try again.")
	case errors.As(err, &parse):
		fmt.Fprintf(stderr, "Failed to load config from %s: %s\n", parse.Path, parse.Err)
	case errors.As(err, &invalid):
		logger.Debug("invalid config", "field", invalid.Field, "value", invalid.Value, "reason", invalid.Reason)
		fmt.Fprintf(stderr, "Invalid %s in config\n", invalid.Field)
	default:
		fmt.Fprintln(stderr, err)
	}
}
