package types

import "fmt"

// ControlType classifies how a mitigating control acts on a risk
type ControlType string

const (
	ControlTypePreventive ControlType = "preventive"
	ControlTypeDetective  ControlType = "detective"
	ControlTypeCorrective ControlType = "corrective"
)

// IsValid checks if the control type is valid
func (t ControlType) IsValid() bool {
	switch t {
	case ControlTypePreventive,
		ControlTypeDetective,
		ControlTypeCorrective:
		return true
	default:
		return false
	}
}

// String returns the string representation of the control type
func (t ControlType) String() string {
	return string(t)
}

// ParseControlType parses a string into a ControlType
func ParseControlType(s string) (ControlType, error) {
	t := ControlType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid control type: %s", s)
	}
	return t, nil
}

// ControlStatus represents the implementation status of a control
type ControlStatus string

const (
	ControlStatusPlanned      ControlStatus = "planned"
	ControlStatusInProgress   ControlStatus = "in_progress"
	ControlStatusImplemented  ControlStatus = "implemented"
	ControlStatusNotEffective ControlStatus = "not_effective"
)

// IsValid checks if the control status is valid
func (s ControlStatus) IsValid() bool {
	switch s {
	case ControlStatusPlanned,
		ControlStatusInProgress,
		ControlStatusImplemented,
		ControlStatusNotEffective:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as ControlStatusPlanned
func (s ControlStatus) Normalize() ControlStatus {
	if s == "" {
		return ControlStatusPlanned
	}
	return s
}

// String returns the string representation of the control status
func (s ControlStatus) String() string {
	return string(s)
}
