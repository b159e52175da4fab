package normalize

import (
	"strings"

	"github.com/cloudtasker/state-converger/internal/errors"
	"github.com/cloudtasker/state-converger/pkg/convert"
)

// Names parses the batch target parameter, given either as a list or as a
// comma-separated string, into an ordered name slice. Parsing happens once
// at the boundary; nothing downstream re-parses strings.
func Names(raw any) ([]string, error) {
	if raw == nil {
		return nil, nil
	}

	if csv, ok := raw.(string); ok {
		parts := strings.Split(csv, ",")
		names := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		return names, nil
	}

	names, err := convert.ToSliceOfString(raw)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation,
			"instance names must be a list or a comma-separated string", "")
	}
	out := names[:0]
	for _, n := range names {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}
