// Package main starts the overlay process.
package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/frudas24/overlaydot/internal/app"
	"github.com/frudas24/overlaydot/internal/config"
	"github.com/frudas24/overlaydot/internal/relay"
	"github.com/frudas24/overlaydot/internal/session"
)

// run wires the application and blocks until shutdown.
func run(debug bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if debug {
		log.Printf("debug: enabled")
	}
	logStartup(cfg)

	sess := session.New()
	transport := relay.NewWSTransport(cfg.HostRelayURL, cfg.RelayDialTimeout(), func(connected bool) {
		sess.SetRelayConnected(connected)
		log.Printf("relay: connected=%t", connected)
	})
	queue := relay.NewQueue(transport, cfg.RelayQueueSize)
	queue.SetDebug(debug)
	defer func() {
		if err := queue.Close(); err != nil {
			log.Printf("relay: close: %v", err)
		}
	}()

	appInstance, err := app.New(cfg, sess, queue)
	if err != nil {
		return err
	}
	if err := appInstance.Start(); err != nil {
		return err
	}
	defer func() {
		if err := appInstance.Stop(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux)
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// logFatal prints and exits for startup failures.
func logFatal(err error) {
	log.Printf("fatal: %v", err)
	os.Exit(1)
}

// logStartup prints configuration checks and connection info.
func logStartup(cfg config.Config) {
	log.Printf("overlay starting")
	logFileStatus("env check", filepath.Join(cfg.DataDir, ".env"))
	logFileStatus("config file", cfg.ConfigFile)
	if cfg.HostRelayURL == "" {
		log.Printf("host relay: disabled (HOST_RELAY_URL empty)")
	} else {
		log.Printf("host relay: %s", cfg.HostRelayURL)
	}
	log.Printf("click thresholds: %dms %.1fpx", cfg.ClickMaxMs, cfg.ClickMaxDistance)
	logListenStatus(cfg.ListenAddr)
}

// logFileStatus reports whether an optional file was found.
func logFileStatus(label, path string) {
	if fileExists(path) {
		log.Printf("%s: ok (%s)", label, path)
		return
	}
	log.Printf("%s: missing (%s)", label, path)
}

// logListenStatus reports the listen address and the control endpoint.
func logListenStatus(addr string) {
	log.Printf("listen addr: %s", addr)
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	log.Printf("control url: ws://%s/ws/control", net.JoinHostPort(host, port))
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
