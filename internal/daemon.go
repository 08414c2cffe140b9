package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oklog/run"
	"github.com/pinky3d/pinkyd/internal/api"
	"github.com/pinky3d/pinkyd/internal/configuration"
	"github.com/pinky3d/pinkyd/internal/events"
	"github.com/pinky3d/pinkyd/internal/gpio"
	"github.com/pinky3d/pinkyd/internal/statistics"
	"github.com/pinky3d/pinkyd/internal/ui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// OpenChip opens the configured gpio chip, or a fake one for dry runs
func OpenChip(config configuration.GpioConfig) (gpio.Chip, error) {
	if config.Fake {
		ui.Warning("Using a fake gpio chip, no hardware will be switched")
		return gpio.NewFakeChip(), nil
	}
	return gpio.OpenChip(config.Chip)
}

// RunDaemon runs all components until SIGINT or SIGTERM is received.
// The automation loop always finishes its current tick before the gpio chip is released.
func RunDaemon(config configuration.Configuration, version string) error {
	chip, err := OpenChip(config.Gpio)
	if err != nil {
		return err
	}

	var sink events.Sink = events.NopSink{}
	var publisher *events.MqttPublisher
	if config.Events.Enabled {
		publisher = events.NewMqttPublisher(config.Events)
		sink = publisher
	}

	app, err := NewApp(config, chip, sink)
	if err != nil {
		_ = chip.Close()
		return err
	}
	defer func() {
		ui.Info("Releasing gpio lines...")
		if err := app.Close(); err != nil {
			ui.Error("Error releasing gpio lines: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var registerer prometheus.Registerer
	if config.Statistics.Enabled {
		registerer = prometheus.DefaultRegisterer
		for _, collector := range app.Collectors() {
			statistics.Register(collector)
		}
	}

	var g run.Group
	{
		if config.Statistics.Enabled {
			// === Prometheus Exporter
			server := api.CreateWebserver()
			server.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
			addr := fmt.Sprintf(":%d", config.Statistics.Port)
			addServer(&g, "statistics", server, addr)
		}
	}
	{
		if config.Api.Enabled {
			// === REST API
			rest := api.CreateRestService(api.Options{
				Surface:    app.Surface,
				Registry:   app.Registry,
				Config:     config,
				Version:    version,
				Registerer: registerer,
			})
			addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)
			addServer(&g, "api", rest, addr)
		}
	}
	{
		if app.Loop != nil {
			// === automation loop
			g.Add(func() error {
				err := app.Loop.Run(ctx)
				ui.Info("Automation loop stopped.")
				return err
			}, func(err error) {
				cancel()
			})
		}
	}
	{
		if publisher != nil {
			// === event publisher
			g.Add(func() error {
				return publisher.Run(ctx)
			}, func(err error) {
				cancel()
			})
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case s := <-sig:
				ui.Info("Received %s signal, exiting...", s)
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		return err
	}
	ui.Info("Done.")
	return nil
}

func addServer(g *run.Group, name string, server *echo.Echo, addr string) {
	g.Add(func() error {
		ui.Info("Starting %s server on %s", name, addr)
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("cannot start %s server: %w", name, err)
		}
		return nil
	}, func(err error) {
		ui.Info("Stopping %s server...", name)
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s server: %v", name, err)
		} else {
			ui.Info("%s server stopped.", name)
		}
	})
}
