package json

import (
	"context"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/core/ports"
	apperrors "github.com/cloudtasker/state-converger/internal/errors"
)

const ReporterTypeJSON = "json"

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	// PrettyPrint bool `yaml:"pretty_print"` // Future option for non-indented JSON
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

type jsonReport struct {
	Changed   bool             `json:"changed"`
	Kind      string           `json:"kind"`
	State     string           `json:"state"`
	Zone      string           `json:"zone,omitempty"`
	Name      string           `json:"name,omitempty"`
	Names     []string         `json:"names,omitempty"`
	Resources []map[string]any `json:"resources,omitempty"`
}

type jsonFailure struct {
	Failed  bool   `json:"failed"`
	Msg     string `json:"msg"`
	Changed bool   `json:"changed"`
}

func (r *Reporter) Report(ctx context.Context, report domain.ConvergenceReport) error {
	if ctx.Err() != nil {
		r.logger.Warnf(ctx, "JSON report generation cancelled.")
		return ctx.Err()
	}

	payload := jsonReport{
		Changed:   report.Changed,
		Kind:      string(report.Kind),
		State:     string(report.State),
		Zone:      report.Zone,
		Name:      report.Name,
		Names:     report.Names,
		Resources: report.Items,
	}
	return r.encode(ctx, payload)
}

func (r *Reporter) Fail(ctx context.Context, err error) error {
	msg := err.Error()
	if userMsg, _, ok := apperrors.GetUserFacingMessage(err); ok {
		msg = userMsg
	}
	return r.encode(ctx, jsonFailure{Failed: true, Msg: msg})
}

func (r *Reporter) encode(ctx context.Context, payload any) error {
	encoder := jsonAPI.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(payload); err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		fmt.Fprintf(r.writer, `{"error": "failed to generate JSON report: %v"}`+"\n", err)
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}
