package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/errors"
)

func TestMetadata(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected []domain.MetadataItem
		wantErr  bool
	}{
		{
			name: "quoted dictionary literal",
			raw:  `{"db": "postgres", "group": "qa"}`,
			expected: []domain.MetadataItem{
				{Key: "db", Value: "postgres"},
				{Key: "group", Value: "qa"},
			},
		},
		{
			name: "already decoded mapping",
			raw:  map[string]any{"group": "qa", "db": "postgres"},
			expected: []domain.MetadataItem{
				{Key: "db", Value: "postgres"},
				{Key: "group", Value: "qa"},
			},
		},
		{
			name:     "scalar values are stringified",
			raw:      map[string]any{"port": 5432, "enabled": true},
			expected: []domain.MetadataItem{{Key: "enabled", Value: "true"}, {Key: "port", Value: "5432"}},
		},
		{
			name:     "nil input",
			raw:      nil,
			expected: nil,
		},
		{
			name:     "empty string",
			raw:      "",
			expected: nil,
		},
		{
			name:    "literal that is not a mapping",
			raw:     "not-a-dict",
			wantErr: true,
		},
		{
			name:    "list input",
			raw:     []any{"a", "b"},
			wantErr: true,
		},
		{
			name:    "nested values are rejected",
			raw:     map[string]any{"db": map[string]any{"host": "x"}},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items, err := Metadata(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.CodeConfigValidation, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, items)
		})
	}
}
