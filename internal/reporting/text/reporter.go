package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/core/ports"
	apperrors "github.com/cloudtasker/state-converger/internal/errors"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `yaml:"no_color"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}

	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

func isTerminal(f *os.File) bool {
	stat, _ := f.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Report(ctx context.Context, report domain.ConvergenceReport) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	status := cyan("[UNCHANGED]")
	if report.Changed {
		status = green("[CHANGED]")
	}

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "%s\t%s\tstate=%s", status, report.Kind, report.State)
	if report.Zone != "" {
		fmt.Fprintf(tw, "\tzone=%s", report.Zone)
	}
	fmt.Fprintln(tw)

	names := report.Names
	if report.Name != "" {
		names = []string{report.Name}
	}
	if len(report.Items) == 0 {
		for _, name := range names {
			fmt.Fprintf(tw, "  %s\n", name)
		}
		return nil
	}

	for _, item := range report.Items {
		name, _ := item[domain.KeyName].(string)
		if name == "" {
			name = "<unknown>"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", yellow(name), formatItem(item))
	}
	return nil
}

func (r *Reporter) Fail(ctx context.Context, err error) error {
	red := color.New(color.FgRed).SprintFunc()

	msg := err.Error()
	userMsg, suggestion, ok := apperrors.GetUserFacingMessage(err)
	if ok {
		msg = userMsg
	}

	fmt.Fprintf(r.writer, "%s %s\n", red("[FAILED]"), msg)
	if suggestion != "" {
		fmt.Fprintf(r.writer, "Suggestion: %s\n", suggestion)
	}
	return nil
}

// formatItem renders an info map as stable key=value pairs, skipping the
// name (already printed) and nil fields.
func formatItem(item map[string]any) string {
	keys := make([]string, 0, len(item))
	for key, value := range item {
		if key == domain.KeyName || value == nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := ""
	for i, key := range keys {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%s", key, formatValue(item[key]))
	}
	return out
}

func formatValue(value any) string {
	const maxLen = 100
	str := fmt.Sprintf("%v", value)
	if len(str) > maxLen {
		return str[:maxLen-3] + "..."
	}
	return str
}
