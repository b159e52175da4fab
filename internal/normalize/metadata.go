package normalize

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/errors"
	"github.com/cloudtasker/state-converger/pkg/convert"
)

// Metadata converts the task-level metadata value into the ordered key/value
// item list the compute API expects. The input is either an already decoded
// mapping or a quoted dictionary-like literal ('{"db": "postgres"}'); both
// JSON and YAML flow syntax parse. Anything that does not resolve to a flat
// mapping is a validation error, reported before any remote call.
func Metadata(raw any) ([]domain.MetadataItem, error) {
	if raw == nil {
		return nil, nil
	}

	var loose any = raw
	if literal, ok := raw.(string); ok {
		if literal == "" {
			return nil, nil
		}
		var parsed any
		if err := yaml.Unmarshal([]byte(literal), &parsed); err != nil {
			return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation,
				"bad metadata syntax", "Provide metadata as a flat mapping, e.g. '{\"db\": \"postgres\"}'.")
		}
		loose = parsed
	}

	m, err := convert.ToStringMap(loose)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation,
			fmt.Sprintf("bad metadata: %v", err),
			"Provide metadata as a flat mapping, e.g. '{\"db\": \"postgres\"}'.")
	}

	items := make([]domain.MetadataItem, 0, len(m))
	for k, v := range m {
		items = append(items, domain.MetadataItem{Key: k, Value: v})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	return items, nil
}
