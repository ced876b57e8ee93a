package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/23skdu/longbow-quiver/internal/config"
	"github.com/23skdu/longbow-quiver/internal/fixture"
	"github.com/23skdu/longbow-quiver/internal/logger"
	"github.com/23skdu/longbow-quiver/internal/monitoring"
)

var (
	outDir      = flag.String("out", "data", "Directory to write the fixture corpus into")
	bundlePath  = flag.String("npz", "", "Also bundle the corpus into a single NPZ archive at this path")
	verify      = flag.Bool("verify", false, "Re-read the corpus after writing and validate it")
	logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFormat   = flag.String("log-format", "console", "Log format (console or json)")
	metricsAddr = flag.String("metrics", "", "Address to serve health and Prometheus metrics (disabled when empty)")
)

func main() {
	flag.Parse()
	logger.Setup(*logLevel, *logFormat)

	cfg := config.Default()
	cfg.OutDir = *outDir
	cfg.BundlePath = *bundlePath
	cfg.Verify = *verify
	cfg.LogLevel = *logLevel
	cfg.LogFormat = *logFormat
	cfg.MetricsAddr = *metricsAddr
	if err := cfg.Validate(); err != nil {
		logger.Log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var mon *monitoring.Monitor
	if cfg.MetricsAddr != "" {
		mon = monitoring.NewMonitor()
		go func() {
			if err := mon.Start(cfg.MetricsAddr); err != nil && err != http.ErrServerClosed {
				logger.Log.Error("monitor server error", "error", err)
			}
		}()
	}

	gen := fixture.NewGenerator(cfg)
	sum, err := gen.Run()
	if err != nil {
		logger.Log.Error("corpus generation failed", "error", err)
		os.Exit(1)
	}
	if mon != nil {
		mon.RecordRun(sum.Files, sum.Bytes, sum.Duration)
	}
	logger.Log.Info("corpus written", "dir", cfg.OutDir, "summary", sum.String())

	if cfg.BundlePath != "" {
		if err := gen.Bundle(cfg.BundlePath); err != nil {
			logger.Log.Error("bundling failed", "error", err)
			os.Exit(1)
		}
	}

	if cfg.Verify {
		rep := gen.Verify()
		if !rep.OK() {
			logger.Log.Error("verification failed", "issues", len(rep.Issues))
			fmt.Fprintln(os.Stderr, rep)
			os.Exit(1)
		}
		logger.Log.Info("verification passed", "files", rep.FilesChecked)
	}
}
