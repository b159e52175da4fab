package domain

import (
	"fmt"

	"github.com/cloudtasker/state-converger/internal/errors"
)

type DesiredState string

const (
	StatePresent DesiredState = "present"
	StateAbsent  DesiredState = "absent"
)

func (s DesiredState) String() string {
	return string(s)
}

// ParseDesiredState resolves the accepted state spellings onto the two
// desired states. Lifecycle transitions (started/stopped/terminated) are not
// supported and fail loudly rather than silently no-op.
func ParseDesiredState(s string) (DesiredState, error) {
	switch s {
	case "", "present", "active", "running":
		return StatePresent, nil
	case "absent", "deleted":
		return StateAbsent, nil
	case "started", "stopped", "terminated":
		return "", errors.NewUserFacing(errors.CodeNotImplemented,
			fmt.Sprintf("lifecycle state '%s' is not implemented", s),
			"Use state 'present' or 'absent'.")
	}
	return "", errors.NewUserFacing(errors.CodeConfigValidation,
		fmt.Sprintf("invalid state '%s'", s),
		"Valid states: present, active, running, absent, deleted.")
}
