package json

import (
	"bytes"
	"context"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/errors"
	"github.com/cloudtasker/state-converger/mocks"
)

func newBufferedReporter(buf *bytes.Buffer) *Reporter {
	return &Reporter{writer: buf, logger: mocks.NoopLogger{}}
}

func TestJSONReporterReport(t *testing.T) {
	var buf bytes.Buffer
	reporter := newBufferedReporter(&buf)

	err := reporter.Report(context.Background(), domain.ConvergenceReport{
		Kind:    domain.KindComputeInstance,
		State:   domain.StatePresent,
		Zone:    "us-central1-a",
		Name:    "web-1",
		Changed: true,
		Items:   []map[string]any{{"name": "web-1", "status": "RUNNING"}},
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["changed"])
	assert.Equal(t, "ComputeInstance", decoded["kind"])
	assert.Equal(t, "present", decoded["state"])
	assert.Equal(t, "us-central1-a", decoded["zone"])
	assert.Equal(t, "web-1", decoded["name"])
	resources := decoded["resources"].([]any)
	require.Len(t, resources, 1)
}

func TestJSONReporterOmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	reporter := newBufferedReporter(&buf)

	err := reporter.Report(context.Background(), domain.ConvergenceReport{
		Kind:  domain.KindNamespace,
		State: domain.StateAbsent,
		Names: []string{"a", "b"},
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, false, decoded["changed"])
	assert.NotContains(t, decoded, "zone")
	assert.NotContains(t, decoded, "name")
	assert.NotContains(t, decoded, "resources")
	assert.Equal(t, []any{"a", "b"}, decoded["names"])
}

func TestJSONReporterFail(t *testing.T) {
	var buf bytes.Buffer
	reporter := newBufferedReporter(&buf)

	failure := errors.NewUserFacing(errors.CodeQuotaExceeded, "quota exhausted in zone", "")
	require.NoError(t, reporter.Fail(context.Background(), failure))

	var decoded map[string]any
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["failed"])
	assert.Equal(t, false, decoded["changed"])
	assert.Equal(t, "quota exhausted in zone", decoded["msg"])
}
