package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/doctoppt/client/internal/events"
	"github.com/doctoppt/client/internal/health"
	"github.com/doctoppt/client/internal/intake"
	"github.com/doctoppt/client/internal/models"
	"github.com/doctoppt/client/internal/notify"
	"github.com/doctoppt/client/internal/session"
	"github.com/doctoppt/client/internal/submit"
	"github.com/doctoppt/client/internal/upload"
	"github.com/doctoppt/client/internal/validation"
	"golang.org/x/sync/errgroup"
)

func runSubmit(a *app, args []string) int {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	docPath := fs.String("document", "", "document to convert (pdf, docx, txt, md)")
	tmplPath := fs.String("template", "", "optional PowerPoint template (.pptx)")
	showStatus := fs.Bool("status", false, "print the processing status after a successful upload")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *docPath == "" && fs.NArg() > 0 {
		*docPath = fs.Arg(0)
	}

	client, err := upload.NewClient(a.cfg.Server.BaseURL, a.cfg.UploadPaths(), a.logger)
	if err != nil {
		fmt.Fprintf(a.stderr, "Invalid server address: %v\n", err)
		return 1
	}

	sess := session.New(a.cfg.UI.SubmitLabel)
	bus := events.NewBus(a.console, a.logger)
	ctrl := intake.NewController(sess, bus, a.console, nil, a.logger)
	orch := submit.NewOrchestrator(sess, client, bus, a.console, a.cfg.UI.BusyLabel, a.logger)
	prober := health.NewProber(client, notify.NewBanner(a.console), bus, a.cfg.HealthInterval(), a.cfg.HealthTimeout(), a.logger)

	if *docPath != "" {
		if !stage(a, *docPath, ctrl.Choose) {
			return 1
		}
	}
	if *tmplPath != "" {
		if !stage(a, *tmplPath, ctrl.SelectTemplate) {
			return 1
		}
	}

	if view := ctrl.View(); view.Preview.Visible {
		fmt.Fprintf(a.stdout, "%s  %s\n", view.Preview.Name, view.Preview.Size)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	probeCtx, stopProbe := context.WithCancel(gctx)
	defer stopProbe()

	g.Go(func() error { return prober.Run(probeCtx) })

	var out *models.Outcome
	g.Go(func() error {
		defer stopProbe()
		var err error
		out, err = orch.Submit(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		a.logger.Debug("submit failed", "error", err)
		return 1
	}

	fmt.Fprintf(a.stdout, "Location: %s\n", out.Location)
	fmt.Fprintf(a.stdout, "Reply:    %s\n", out.Kind)
	fmt.Fprintf(a.stdout, "Attempt:  %s\n", out.AttemptID)

	if *showStatus && out.Filename != "" {
		// a status failure does not undo the upload
		<-notify.Go(a.console, a.logger, func() error {
			st, err := client.Status(ctx, out.Filename)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Status:   %s (%.0f%%) %s\n", st.Status, st.Progress, st.Message)
			return nil
		})
	}
	return 0
}

// stage reads path from disk and passes it to selectFn.
func stage(a *app, path string, selectFn func(*models.SelectedFile) validation.Result) bool {
	f, err := intake.Stat(path)
	if err != nil {
		a.console.Notify(notify.LevelError, fmt.Sprintf("Cannot read %s: %v", path, err))
		return false
	}
	return selectFn(f).Valid
}
