// Command server runs a local emulator of the DocToPPT conversion server,
// for trying the client without the real backend.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/doctoppt/client/internal/api"
	"github.com/doctoppt/client/internal/config"
	"github.com/doctoppt/client/internal/logging"
	"github.com/doctoppt/client/internal/storage"
	"github.com/joho/godotenv"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	configPath := flag.String("config", filepath.Join(filepath.Dir(exePath), config.DefaultFileName), "configuration file")
	mode := flag.String("mode", "", "reply mode override: json, redirect, html or error")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *mode != "" {
		cfg.Emulator.Mode = *mode
	}

	replyMode, err := api.ParseReplyMode(cfg.Emulator.Mode)
	if err != nil {
		fmt.Printf("Invalid reply mode: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Advanced.LogLevel, os.Stderr)

	// Initialize storage
	store, err := storage.NewLocalStore(cfg.GetUploadDir())
	if err != nil {
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}

	e := api.NewServer(api.Dependencies{
		Store:              store,
		Mode:               replyMode,
		Version:            cfg.Emulator.Version,
		DeepseekConfigured: os.Getenv("DEEPSEEK_API_KEY") != "",
		BodyLimit:          cfg.Emulator.BodyLimit,
		Logger:             logger,
	})

	s := &http.Server{
		Addr:              cfg.GetServerAddr(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           DocToPPT Server Emulator                        ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Reply Mode: %-45s║\n", replyMode)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", *configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Uploads:   %-46s║\n", cfg.GetUploadDir())
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	e.Logger.Fatal(e.StartServer(s))
}
