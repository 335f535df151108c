// Package health polls the server's health endpoint and raises a single
// warning banner while the connection looks unstable.
package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/doctoppt/client/internal/events"
	"github.com/doctoppt/client/internal/models"
	"github.com/doctoppt/client/internal/notify"
)

const (
	DefaultInterval = 30 * time.Second
	DefaultTimeout  = 10 * time.Second

	// DegradedMessage is the banner text shown when a probe fails.
	DegradedMessage = "Unstable connection to the server. Some features may be limited."
)

// Checker performs one health request.
type Checker interface {
	Health(ctx context.Context) (*models.HealthReport, error)
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) (*models.HealthReport, error)

// Health calls f.
func (f CheckerFunc) Health(ctx context.Context) (*models.HealthReport, error) { return f(ctx) }

// Prober runs health checks on a fixed interval. It never touches the
// upload session.
type Prober struct {
	checker  Checker
	banner   *notify.Banner
	bus      *events.Bus
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

// NewProber creates a Prober. Zero durations fall back to the defaults.
func NewProber(c Checker, banner *notify.Banner, bus *events.Bus, interval, timeout time.Duration, logger *slog.Logger) *Prober {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{
		checker:  c,
		banner:   banner,
		bus:      bus,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With("component", "health"),
	}
}

// Check runs one probe. A failure shows the warning banner unless one is
// already visible and emits health.degraded.
func (p *Prober) Check(ctx context.Context) (*models.HealthReport, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	report, err := p.checker.Health(ctx)
	if err != nil {
		p.logger.Warn("health check failed", "error", err)
		if p.banner.Show(DegradedMessage) {
			p.logger.Info("connection warning shown")
		}
		p.bus.Emit(events.Event{Type: events.HealthDegraded, Message: DegradedMessage, Err: err})
		return nil, err
	}

	p.logger.Debug("health check ok", "status", report.Status, "version", report.Version)
	return report, nil
}

// Run probes every interval until ctx is done. The first probe happens
// one interval after the start. It returns nil when ctx is cancelled.
func (p *Prober) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}
