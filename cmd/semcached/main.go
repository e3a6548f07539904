package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jroosing/semcache/internal/config"
	"github.com/jroosing/semcache/internal/logging"
	"github.com/jroosing/semcache/internal/server"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML configuration file (or set SEMCACHE_CONFIG)")
		hostname   = flag.String("hostname", "", "Override the advertised .local host name")
		port       = flag.Int("port", 0, "Override the mDNS port (5353 to share the standard port)")
		ifaces     = flag.String("interfaces", "", "Comma-separated interface names to use (default all)")
		dbPath     = flag.String("db", "", "Override the settings database path")
		noAPI      = flag.Bool("no-api", false, "Disable the management API")
		jsonLogs   = flag.Bool("json-logs", false, "Enable JSON structured logging")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(config.ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *hostname != "" {
		cfg.Server.Hostname = *hostname
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *ifaces != "" {
		cfg.Server.Interfaces = strings.Split(*ifaces, ",")
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *noAPI {
		cfg.API.Enabled = false
	}
	if *jsonLogs {
		cfg.Logging.Structured = true
		cfg.Logging.StructuredFormat = "json"
	}
	if *debug {
		cfg.Logging.Level = "DEBUG"
	}
	// Flags may have changed validated fields.
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Configure(logging.Config{
		Level:            cfg.Logging.Level,
		Structured:       cfg.Logging.Structured,
		StructuredFormat: cfg.Logging.StructuredFormat,
		IncludePID:       cfg.Logging.IncludePID,
		ExtraFields:      cfg.Logging.ExtraFields,
	})
	logger.Info("semcache starting",
		"hostname", cfg.Server.Hostname,
		"port", cfg.Server.Port,
		"group", cfg.Server.Group,
		"api", cfg.API.Enabled,
		"services", len(cfg.Services),
	)

	runner := server.NewRunner(logger)
	if err := runner.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "semcache exited with error: %v\n", err)
		os.Exit(1)
	}
}
