package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// UserID is the stable identifier issued by the authentication provider
type UserID string

// NewUserID generates a new random UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

// Validate checks if the UserID is valid
func (u UserID) Validate() error {
	if u == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// String returns the string representation of UserID
func (u UserID) String() string {
	return string(u)
}

// DepartmentID represents a unique identifier for a department.
// The empty value means "no department": it never matches an assignment.
type DepartmentID string

// NewDepartmentID generates a new random DepartmentID
func NewDepartmentID() DepartmentID {
	return DepartmentID(uuid.New().String())
}

// Validate checks if the DepartmentID is valid
func (d DepartmentID) Validate() error {
	if d == "" {
		return goerr.New("department ID cannot be empty")
	}
	return nil
}

// String returns the string representation of DepartmentID
func (d DepartmentID) String() string {
	return string(d)
}

// RiskID represents a unique identifier for a risk
type RiskID string

// NewRiskID generates a new random RiskID
func NewRiskID() RiskID {
	return RiskID(uuid.New().String())
}

// Validate checks if the RiskID is valid
func (r RiskID) Validate() error {
	if r == "" {
		return goerr.New("risk ID cannot be empty")
	}
	return nil
}

// String returns the string representation of RiskID
func (r RiskID) String() string {
	return string(r)
}

// ControlID represents a unique identifier for a mitigating control
type ControlID string

// NewControlID generates a new random ControlID
func NewControlID() ControlID {
	return ControlID(uuid.New().String())
}

// Validate checks if the ControlID is valid
func (c ControlID) Validate() error {
	if c == "" {
		return goerr.New("control ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ControlID
func (c ControlID) String() string {
	return string(c)
}
