// Command doctoppt submits documents to a DocToPPT conversion server from
// the terminal.
//
// Usage:
//
//	doctoppt [-config FILE] submit -document PATH [-template PATH] [-status]
//	doctoppt [-config FILE] check [-template] FILE...
//	doctoppt [-config FILE] health
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/doctoppt/client/internal/config"
	"github.com/doctoppt/client/internal/logging"
	"github.com/doctoppt/client/internal/notify"
	"github.com/joho/godotenv"
)

// Version info (set during build)
var Version = "dev"

// app bundles what every command needs.
type app struct {
	cfg     *config.AppConfig
	logger  *slog.Logger
	console *notify.Console
	stdout  io.Writer
	stderr  io.Writer
}

type command func(a *app, args []string) int

var commands = map[string]command{
	"submit": runSubmit,
	"check":  runCheck,
	"health": runHealth,
}

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("doctoppt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", defaultConfigPath(), "configuration file (.config XML, .yaml or .yml)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: doctoppt [-config FILE] <submit|check|health> [flags]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", fs.Arg(0))
		fs.Usage()
		return 2
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	a := &app{
		cfg:     cfg,
		logger:  logging.New(cfg.Advanced.LogLevel, stderr),
		console: notify.NewConsole(stdout, "DocToPPT", cfg.UI.Colors),
		stdout:  stdout,
		stderr:  stderr,
	}

	code := 1
	if notify.Guard(a.console, a.logger, func() { code = cmd(a, fs.Args()[1:]) }) {
		return 1
	}
	return code
}

// defaultConfigPath resolves the config file next to the executable.
func defaultConfigPath() string {
	exePath, err := os.Executable()
	if err != nil {
		return config.DefaultFileName
	}
	return filepath.Join(filepath.Dir(exePath), config.DefaultFileName)
}
