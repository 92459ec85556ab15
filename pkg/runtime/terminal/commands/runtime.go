package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/aims/pkg/client"
	"github.com/de-tools/aims/pkg/models/domain"
	"github.com/de-tools/aims/pkg/runtime/terminal/export"
	"github.com/de-tools/aims/pkg/services/config"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// Runtime is the state shared by all commands. The root command fills it
// before any subcommand runs.
type Runtime struct {
	Config   config.Config
	Client   *client.Client
	Creds    config.CredentialStore
	Reporter *export.Reporter
}

// output renders either the report or, for --format json, the raw value.
type output struct {
	format string
}

func (o *output) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "format", formatTable, "Output format: table or json")
}

func (o *output) write(rt *Runtime, report *domain.Report, raw any) error {
	switch o.format {
	case "", formatTable:
		return rt.Reporter.Handle(report)
	case formatJSON:
		if !rt.Config.Features.EnableExports {
			return fmt.Errorf("json export is disabled by configuration")
		}
		return rt.Reporter.JSON(raw)
	default:
		return fmt.Errorf("unknown format %q, expected %s or %s", o.format, formatTable, formatJSON)
	}
}

func pageTitle(page, pages, total int) string {
	if pages == 0 {
		return "No results"
	}
	return fmt.Sprintf("Page %d of %d (%d total)", page, pages, total)
}

// displayDate reformats an ISO date with the configured layout. Values that
// do not parse are shown as is.
func displayDate(raw, layout string) string {
	t, err := time.Parse(config.DefaultDateFormat, raw)
	if err != nil || layout == "" {
		return raw
	}
	return t.Format(layout)
}

func oneOf[T ~string](flag, value string, allowed ...T) (T, error) {
	for _, a := range allowed {
		if strings.EqualFold(string(a), value) {
			return a, nil
		}
	}
	names := make([]string, 0, len(allowed))
	for _, a := range allowed {
		names = append(names, string(a))
	}
	return "", fmt.Errorf("invalid --%s %q, expected one of: %s", flag, value, strings.Join(names, ", "))
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
