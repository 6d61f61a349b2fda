package usecase

import (
	"errors"

	"github.com/riskledger/riskledger/pkg/repository/firestore"
	"github.com/riskledger/riskledger/pkg/repository/memory"
)

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrRiskNotFound       = errors.New("risk not found")
	ErrControlNotFound    = errors.New("control not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrUserNotFound       = errors.New("user not found")

	// Access control errors
	ErrPermissionDenied = errors.New("permission denied")

	// Other errors
	ErrStaleIdentity = errors.New("identity changed during permission load")
)

// Context keys for error values
const (
	RiskIDKey       = "risk_id"
	ControlIDKey    = "control_id"
	DepartmentIDKey = "department_id"
	UserIDKey       = "user_id"
)

// isNotFound reports whether err is a legitimate-absence signal from either
// backing store, as opposed to a fetch failure.
func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}
