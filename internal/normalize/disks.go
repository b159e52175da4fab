package normalize

import (
	"fmt"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/errors"
)

// Disks converts a task-level disk list into DiskSpec entries. Three entry
// forms are accepted:
//
//   - a plain name string (legacy),
//   - a {name, mode} pair (legacy),
//   - a full API-format mapping, passed through via Raw.
//
// The first legacy entry is the boot disk and defaults to READ_WRITE; later
// entries default to READ_ONLY. Names are resolved against the remote system
// later, at create time.
func Disks(raw []any) ([]domain.DiskSpec, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	specs := make([]domain.DiskSpec, 0, len(raw))
	for i, entry := range raw {
		switch disk := entry.(type) {
		case string:
			specs = append(specs, domain.DiskSpec{
				Name: disk,
				Mode: legacyMode(i, ""),
				Boot: i == 0,
			})
		case map[string]any:
			if name, mode, ok := legacyPair(disk); ok {
				specs = append(specs, domain.DiskSpec{
					Name: name,
					Mode: legacyMode(i, mode),
					Boot: i == 0,
				})
				continue
			}
			specs = append(specs, domain.DiskSpec{Raw: disk, Boot: i == 0})
		default:
			return nil, errors.NewUserFacing(errors.CodeConfigValidation,
				fmt.Sprintf("invalid value found in disks parameter at index %d (type %T)", i, entry), "")
		}
	}
	return specs, nil
}

func legacyMode(index int, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if index == 0 {
		return domain.DiskModeReadWrite
	}
	return domain.DiskModeReadOnly
}

// legacyPair recognizes the pre-struct {name, mode} disk form. Any extra key
// means the entry is a full API-format mapping instead.
func legacyPair(disk map[string]any) (name, mode string, ok bool) {
	if len(disk) > 2 {
		return "", "", false
	}
	nameRaw, hasName := disk["name"]
	if !hasName {
		return "", "", false
	}
	nameStr, nameIsStr := nameRaw.(string)
	if !nameIsStr {
		return "", "", false
	}
	if len(disk) == 1 {
		return nameStr, "", true
	}
	modeRaw, hasMode := disk["mode"]
	if !hasMode {
		return "", "", false
	}
	modeStr, modeIsStr := modeRaw.(string)
	if !modeIsStr {
		return "", "", false
	}
	return nameStr, modeStr, true
}
