// Package main runs a reference host that applies relayed overlay events.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/frudas24/overlaydot/internal/config"
	"github.com/frudas24/overlaydot/internal/host"
	"github.com/frudas24/overlaydot/internal/hostwin"
)

// main is the entrypoint for the reference host.
func main() {
	replace := flag.Bool("replace", true, "Replace an existing overlay connection instead of rejecting the new one")
	flag.Parse()

	if err := run(*replace); err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(1)
	}
}

// run serves the relay endpoint until interrupted.
func run(replace bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	window, err := hostwin.NewWindow(cfg.OverlayWindowTitle, cfg.HubWindowTitle)
	if err != nil {
		if !errors.Is(err, hostwin.ErrUnsupported) {
			return err
		}
		log.Printf("window control: %v (events will be logged only)", err)
	}

	policy := host.ConnReject
	if replace {
		policy = host.ConnReplace
	}
	relayServer := host.NewServer(window, policy)
	relayServer.OnClick(func() {
		log.Printf("host: click-action")
	})

	mux := http.NewServeMux()
	mux.Handle("/ws/relay", relayServer)
	server := &http.Server{
		Addr:    cfg.HostListenAddr,
		Handler: mux,
	}
	log.Printf("host listening on %s", cfg.HostListenAddr)

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
	stats := relayServer.Stats()
	log.Printf("host: shutdown after %d moves, %d clicks", stats.Moves, stats.Clicks)
	return server.Shutdown(shutdownCtx)
}
