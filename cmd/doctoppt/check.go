package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/doctoppt/client/internal/format"
	"github.com/doctoppt/client/internal/intake"
	"github.com/doctoppt/client/internal/validation"
	"github.com/olekukonko/tablewriter"
)

// runCheck validates files locally without contacting the server.
func runCheck(a *app, args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	asTemplate := fs.Bool("template", false, "check files against the template rule instead of the document rule")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(a.stderr, "Usage: doctoppt check [-template] FILE...")
		return 2
	}

	check := validation.CheckDocument
	if *asTemplate {
		check = validation.CheckTemplate
	}

	table := tablewriter.NewWriter(a.stdout)
	table.SetHeader([]string{"File", "Size", "Type", "Result", "Message"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	failed := 0
	for _, path := range fs.Args() {
		f, err := intake.Stat(path)
		if err != nil {
			failed++
			msg := err.Error()
			if errors.Is(err, os.ErrNotExist) {
				msg = "not found"
			}
			table.Append([]string{path, "-", "-", "ERROR", msg})
			continue
		}

		res := check(f)
		status := "OK"
		if !res.Valid {
			failed++
			status = "REJECTED"
		}
		table.Append([]string{f.Name, format.FormatSize(f.Size), f.MimeType, status, res.Message})
	}
	table.Render()

	a.logger.Debug("check finished", "files", fs.NArg(), "failed", failed)
	if failed > 0 {
		return 1
	}
	return 0
}
