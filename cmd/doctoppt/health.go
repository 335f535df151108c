package main

import (
	"context"
	"fmt"

	"github.com/doctoppt/client/internal/health"
	"github.com/doctoppt/client/internal/notify"
	"github.com/doctoppt/client/internal/upload"
)

// runHealth probes the server once.
func runHealth(a *app, args []string) int {
	client, err := upload.NewClient(a.cfg.Server.BaseURL, a.cfg.UploadPaths(), a.logger)
	if err != nil {
		fmt.Fprintf(a.stderr, "Invalid server address: %v\n", err)
		return 1
	}

	prober := health.NewProber(client, notify.NewBanner(a.console), nil, a.cfg.HealthInterval(), a.cfg.HealthTimeout(), a.logger)
	report, err := prober.Check(context.Background())
	if err != nil {
		return 1
	}

	fmt.Fprintf(a.stdout, "Server:   %s\n", client.BaseURL())
	fmt.Fprintf(a.stdout, "Status:   %s\n", report.Status)
	fmt.Fprintf(a.stdout, "Version:  %s\n", report.Version)
	fmt.Fprintf(a.stdout, "DeepSeek: %t\n", report.DeepseekConfigured)
	return 0
}
