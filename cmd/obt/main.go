// Command obt is an onboarding tool for secure IoT devices.
//
// It discovers devices in the manufacturer-default state, takes ownership
// of them with one of three ownership transfer methods, and provisions
// credentials and access control entries onto owned devices.
//
// Usage:
//
//	obt [flags]
//
// Flags:
//
//	-config string              Configuration file path (YAML)
//	-log-level string           Log level: debug, info, warn, error (default "info")
//	-journal string             Write the operation journal to this file
//	-metrics-addr string        Serve Prometheus metrics on this address
//	-interactive                Run the interactive menu (default true)
//	-fleet string               Simulated fleet description (YAML)
//	-latency duration           Override the simulated response latency
//	-creds-dir string           Directory for the tool's credentials (default "./onboarding_tool_creds/")
//	-discovery string           Discovery backend: sim, dnssd (default "sim")
//	-iface string               Network interface for dnssd discovery
//	-otm-failure-policy string  On failed ownership transfer: leave-removed, rollback
//
// Examples:
//
//	# Interactive session against the built-in simulated fleet
//	obt
//
//	# Custom fleet with a journal and metrics
//	obt -fleet fleet.yaml -journal obt.journal -metrics-addr :9100
//
//	# Find devices on the local network, roll back failed transfers
//	obt -discovery dnssd -iface eth0 -otm-failure-policy rollback
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/secure-iot/obt-go/cmd/obt/interactive"
	"github.com/secure-iot/obt-go/pkg/dnssd"
	obtlog "github.com/secure-iot/obt-go/pkg/log"
	"github.com/secure-iot/obt-go/pkg/metrics"
	"github.com/secure-iot/obt-go/pkg/obt"
	"github.com/secure-iot/obt-go/pkg/otm"
	"github.com/secure-iot/obt-go/pkg/sdk"
	"github.com/secure-iot/obt-go/pkg/simulator"
)

func main() {
	config, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}
	if err := run(config); err != nil {
		fmt.Fprintf(os.Stderr, "obt: %v\n", err)
		os.Exit(1)
	}
}

func run(config *Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out io.Writer = os.Stderr
	var shell *interactive.Shell
	if config.Interactive {
		var err error
		shell, err = interactive.New()
		if err != nil {
			return err
		}
		// Log through readline so output does not clobber the prompt.
		out = shell.Stderr()
	}

	level, _ := parseLevel(config.LogLevel)
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	logger.Info("starting onboarding tool",
		"discovery", config.Discovery,
		"creds_dir", config.CredsDir,
		"policy", config.OTMFailurePolicy)

	svc, sim, err := buildService(config, logger)
	if err != nil {
		if shell != nil {
			shell.Close()
		}
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Warn("shutdown", "error", err)
		}
	}()

	if config.MetricsAddr != "" {
		srv, addr, err := svc.Metrics().Serve(config.MetricsAddr, logger)
		if err != nil {
			return err
		}
		logger.Info("metrics available", "addr", addr.String())
		defer shutdownHTTP(srv)
	}

	if shell != nil {
		go shell.Run(ctx, cancel, svc, sim)
	} else {
		if _, err := svc.Discovery().DiscoverUnowned(sdk.ScopeGeneral); err != nil {
			logger.Warn("initial discovery", "error", err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig.String())
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	cancel()
	if shell != nil {
		shell.Close()
	}
	return nil
}

// buildService creates the SDK backend and the onboarding service.
func buildService(config *Config, logger *slog.Logger) (*obt.Service, *simulator.Simulator, error) {
	fleet := simulator.DefaultFleet()
	if config.Fleet != "" {
		var err error
		if fleet, err = simulator.LoadFleet(config.Fleet); err != nil {
			return nil, nil, err
		}
	}

	simCfg := simulator.DefaultConfig()
	simCfg.Fleet = fleet
	simCfg.Latency = config.Latency
	simCfg.CredsDir = config.CredsDir
	simCfg.Logger = logger.With("component", "simulator")
	if simCfg.CredsDir != "" {
		if err := os.MkdirAll(simCfg.CredsDir, 0o700); err != nil {
			return nil, nil, fmt.Errorf("creating credential directory: %w", err)
		}
	}
	sim, err := simulator.New(simCfg)
	if err != nil {
		return nil, nil, err
	}

	policy, _ := otm.ParseFailurePolicy(config.OTMFailurePolicy)
	svcCfg := obt.DefaultConfig()
	svcCfg.SDK = sim
	svcCfg.Policy = policy
	svcCfg.Logger = logger
	svcCfg.Metrics = metrics.New()

	var closers []io.Closer
	fail := func(err error) (*obt.Service, *simulator.Simulator, error) {
		for _, c := range closers {
			_ = c.Close()
		}
		_ = sim.Close()
		return nil, nil, err
	}

	if config.Discovery == DiscoveryDNSSD {
		bcfg := dnssd.DefaultConfig()
		bcfg.Interface = config.Interface
		bcfg.Logger = logger.With("component", "dnssd")
		browser, err := dnssd.NewBrowser(bcfg)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, browser)
		svcCfg.Discovery = browser
	}

	if config.Journal != "" {
		journal, err := obtlog.NewFileLogger(config.Journal)
		if err != nil {
			return fail(fmt.Errorf("opening journal: %w", err))
		}
		closers = append(closers, journal)
		svcCfg.Journal = journal
	}

	svc, err := obt.New(svcCfg)
	if err != nil {
		return fail(err)
	}
	return svc, sim, nil
}

func shutdownHTTP(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_ = srv.Close()
	}
}
