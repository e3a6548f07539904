// Package server wires the semcache daemon together: settings database,
// mDNS controller, discovery client and management API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/jroosing/semcache/internal/api"
	"github.com/jroosing/semcache/internal/config"
	"github.com/jroosing/semcache/internal/database"
	"github.com/jroosing/semcache/internal/discovery"
	"github.com/jroosing/semcache/internal/logging"
	"github.com/jroosing/semcache/internal/mdns"
	"golang.org/x/sync/errgroup"
)

// Runner orchestrates daemon startup and shutdown.
type Runner struct {
	logger    *slog.Logger
	transport mdns.Transport
	clock     clockwork.Clock

	ready      chan struct{}
	controller *mdns.Controller
	client     *discovery.Client
}

// NewRunner creates a new runner with the given logger.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, ready: make(chan struct{})}
}

// SetTransport replaces the UDP socket transport, e.g. with a MemoryNetwork
// transport in tests.
func (r *Runner) SetTransport(t mdns.Transport) {
	r.transport = t
}

// SetClock replaces the clock the discovery client runs on.
func (r *Runner) SetClock(c clockwork.Clock) {
	r.clock = c
}

// Ready is closed once startup registration has finished.
func (r *Runner) Ready() <-chan struct{} {
	return r.ready
}

// Controller returns the running controller; valid after Ready.
func (r *Runner) Controller() *mdns.Controller {
	return r.controller
}

// Client returns the running discovery client; valid after Ready.
func (r *Runner) Client() *discovery.Client {
	return r.client
}

// Run starts the daemon and blocks until SIGINT or SIGTERM.
func (r *Runner) Run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return r.RunWithContext(ctx, cfg)
}

// RunWithContext starts the daemon and blocks until ctx is canceled or the
// API server fails.
//
// Lifecycle:
//  1. Open the settings database (migrations run on open)
//  2. Start the mDNS controller
//  3. Register configured and persisted services
//  4. Serve the management API (if enabled)
//  5. On shutdown: stop the API, stop the controller, clear local records
func (r *Runner) RunWithContext(ctx context.Context, cfg *config.Config) error {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if cfg.API.PagesDir == "" {
		cfg.API.PagesDir = db.GetSettingWithDefault(database.SettingPagesDir, "")
	}

	transport := r.transport
	if transport == nil {
		transport = &mdns.UDPTransport{
			Logger:         logging.Component(r.logger, "transport"),
			InterfaceNames: cfg.Server.Interfaces,
		}
	}

	limits := mdns.RateLimitSettings{
		GlobalQPS:   cfg.Server.RateLimit.GlobalQPS,
		GlobalBurst: cfg.Server.RateLimit.GlobalBurst,
		SourceQPS:   cfg.Server.RateLimit.SourceQPS,
		SourceBurst: cfg.Server.RateLimit.SourceBurst,
		MaxSources:  cfg.Server.RateLimit.MaxSources,
	}
	ctrl, err := mdns.NewController(transport, mdns.Config{
		Port:    cfg.Server.Port,
		Group:   cfg.Server.Group,
		Logger:  logging.Component(r.logger, "mdns"),
		Limiter: mdns.NewRateLimiter(limits),
	})
	if err != nil {
		return err
	}
	if err := ctrl.Start(ctx); err != nil {
		return err
	}

	opts := OptionsFromConfig(cfg.Discovery)
	client := discovery.NewClient(ctrl, discovery.Config{
		Clock:   r.clock,
		Logger:  logging.Component(r.logger, "discovery"),
		Options: &opts,
	})
	r.controller = ctrl
	r.client = client

	defer func() {
		if err := client.Stop(); err != nil {
			r.logger.Warn("controller stop failed", "err", err)
		}
		client.ClearAllRecords()
		r.logger.Info("semcache stopped")
	}()

	r.logger.Info("mdns engine running",
		"hostname", cfg.Server.Hostname,
		"port", ctrl.Port(),
		"group", cfg.Server.Group,
		"rate_limits", limits.String(),
	)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.API.Enabled {
		srv := api.New(cfg, logging.Component(r.logger, "api"), db)
		srv.Handler().SetEngine(ctrl)
		srv.Handler().SetDiscovery(client)

		g.Go(func() error {
			r.logger.Info("management api listening", "addr", srv.Addr())
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("api server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	r.registerServices(gctx, cfg, db, client)
	close(r.ready)

	g.Go(func() error {
		<-gctx.Done()
		return nil
	})
	return g.Wait()
}

// OptionsFromConfig converts validated discovery settings to client options.
func OptionsFromConfig(d config.DiscoveryConfig) discovery.Options {
	return discovery.Options{
		ProbeMaxDelay:  d.ProbeMaxDelay,
		ProbeInterval:  d.ProbeInterval,
		ProbeCount:     d.ProbeCount,
		BrowseWait:     d.BrowseWait,
		PTRRetries:     d.PTRRetries,
		ResolveWait:    d.ResolveWait,
		ResolveRetries: d.ResolveRetries,
		HostTTL:        d.HostTTL,
		ServiceTTL:     d.ServiceTTL,
	}
}

// registerServices advertises configured services followed by persisted
// ones, skipping duplicates. Conflicts are logged; startup continues.
func (r *Runner) registerServices(ctx context.Context, cfg *config.Config, db *database.DB, client *discovery.Client) {
	pending := make([]config.ServiceConfig, 0, len(cfg.Services))
	pending = append(pending, cfg.Services...)

	persisted, err := db.ListServices()
	if err != nil {
		r.logger.Error("failed to load persisted services", "err", err)
	}
	for _, s := range persisted {
		pending = append(pending, config.ServiceConfig{Name: s.Name, Type: s.Type, Port: s.Port})
	}

	seen := map[string]bool{}
	for _, svc := range pending {
		name := svc.Name
		if name == "" {
			name = defaultInstanceName(cfg, db)
		}
		key := strings.ToLower(name + "|" + svc.Type)
		if seen[key] {
			continue
		}
		seen[key] = true

		info, err := client.Register(ctx, cfg.Server.Hostname, name, svc.Type, svc.Port)
		switch {
		case errors.Is(err, discovery.ErrNameTaken):
			r.logger.Error("service name in use on the network", "name", name, "type", svc.Type, "err", err)
		case err != nil:
			if ctx.Err() != nil {
				return
			}
			r.logger.Error("service registration failed", "name", name, "type", svc.Type, "err", err)
		default:
			r.logger.Info("service advertised",
				"name", info.ServiceName,
				"type", info.Type,
				"host", info.Domain,
				"port", info.Port,
			)
		}
	}
}

// defaultInstanceName is the instance.name setting, or the first label of
// the hostname.
func defaultInstanceName(cfg *config.Config, db *database.DB) string {
	label, _, _ := strings.Cut(cfg.Server.Hostname, ".")
	return db.GetSettingWithDefault(database.SettingInstanceName, label)
}
