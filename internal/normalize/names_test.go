package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected []string
		wantErr  bool
	}{
		{name: "comma separated", raw: "web-1,web-2,web-3", expected: []string{"web-1", "web-2", "web-3"}},
		{name: "whitespace around entries", raw: " web-1 , web-2 ", expected: []string{"web-1", "web-2"}},
		{name: "list input", raw: []any{"web-1", "web-2"}, expected: []string{"web-1", "web-2"}},
		{name: "string slice input", raw: []string{"web-1"}, expected: []string{"web-1"}},
		{name: "nil input", raw: nil, expected: nil},
		{name: "empty entries dropped", raw: "web-1,,", expected: []string{"web-1"}},
		{name: "scalar is rejected", raw: 7, wantErr: true},
		{name: "numeric elements are coerced", raw: []any{"web-1", 2}, expected: []string{"web-1", "2"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			names, err := Names(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, names)
		})
	}
}
