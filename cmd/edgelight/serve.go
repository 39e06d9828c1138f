package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/edgelight"
	httpAdapter "github.com/gogpu/edgelight/internal/adapters/http"
	"github.com/gogpu/edgelight/internal/adapters/redis"
	"github.com/gogpu/edgelight/notify"
	"github.com/gogpu/edgelight/surface"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the notification daemon",
	Long: `Accepts notifications over HTTP (and Redis pub/sub when configured)
and animates the edge trail onto the configured surface.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTP.Addr = addr
		}
		if name, _ := cmd.Flags().GetString("surface"); name != "" {
			cfg.Surface.Name = name
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	log := edgelight.Logger()

	opts := surface.DefaultOptions(cfg.Surface.Width, cfg.Surface.Height)
	opts.OutputDir = cfg.Surface.Output
	if cfg.Surface.Name == "image" && opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	var (
		surf surface.Surface
		err  error
	)
	if cfg.Surface.Name == "" || cfg.Surface.Name == "auto" {
		surf, err = surface.NewSurface(opts)
	} else {
		surf, err = surface.NewSurfaceByName(cfg.Surface.Name, opts)
	}
	if err != nil {
		return err
	}
	defer surf.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := notify.NewMetrics(reg)

	anim := edgelight.NewAnimator(edgelight.WithStyle(cfg.Style()))
	driver := edgelight.NewDriver(anim, surf,
		edgelight.WithFrameRate(cfg.Animation.FrameRate),
		edgelight.WithFrameHook(metrics.ObserveFrame),
	)
	dispatcher := notify.NewDispatcher(newResolver(), anim,
		notify.WithDuration(cfg.Animation.Duration),
		notify.WithThreshold(cfg.Notifications.Threshold),
		notify.WithIgnore(cfg.Notifications.Ignore...),
		notify.WithMetrics(metrics),
		notify.WithResolutionCache(cfg.Colors.CacheSize),
		notify.WithLogger(log),
	)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpAdapter.NewHandler(dispatcher, reg, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := driver.Run(ctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("edgelight: http listening", "addr", srv.Addr, "surface", cfg.Surface.Name)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("edgelight: graceful shutdown did not complete", "error", err)
			return srv.Close()
		}
		return nil
	})
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer client.Close()
		sub := redis.NewSubscriber(client, dispatcher,
			redis.WithChannel(cfg.Redis.Channel),
			redis.WithLogger(log),
		)
		// Redis is optional ingress: HTTP keeps serving without it.
		g.Go(func() error {
			if err := sub.Run(ctx); err != nil {
				log.Error("edgelight: redis ingress disabled", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		})
	}

	err = g.Wait()
	log.Info("edgelight: stopped")
	return err
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().String("surface", "", "Surface backend: image, terminal, null or auto")
}
