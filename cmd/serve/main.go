// Command serve runs the draw-pipe HTTP API with graceful shutdown.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"draw-pipe/internal/config"
	"draw-pipe/internal/profile"
	"draw-pipe/internal/server"
	"draw-pipe/internal/version"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "draw-pipe.yaml", "Path to the YAML config file")
	addr := flag.String("addr", "", "Listen address override")
	dataDir := flag.String("data", "", "Template data directory override")
	seed := flag.Bool("seed", false, "Seed the data directory with built-in templates if empty")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Listen = *addr
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	log.Printf("draw-pipe API v%s (built %s, commit %s)",
		version.Version, version.BuildTime, version.GitCommit)

	if *seed {
		if err := profile.SeedDir(cfg.DataDir); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed templates: %v\n", err)
			os.Exit(1)
		}
	}

	catalog := profile.NewCatalog(cfg.DataDir)
	if _, err := catalog.Templates(); err != nil {
		log.Printf("template catalog warning: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, catalog).ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		os.Exit(1)
	}
	log.Printf("shutdown complete")
}
