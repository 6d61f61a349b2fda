package interfaces

import (
	"context"

	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/types"
)

type DepartmentRepository interface {
	// Create creates a new department
	Create(ctx context.Context, dept *model.Department) (*model.Department, error)

	// Get retrieves a department by ID
	Get(ctx context.Context, id types.DepartmentID) (*model.Department, error)

	// List retrieves all departments ordered by name
	List(ctx context.Context) ([]*model.Department, error)

	// Update updates an existing department
	Update(ctx context.Context, dept *model.Department) (*model.Department, error)

	// Delete deletes a department by ID
	Delete(ctx context.Context, id types.DepartmentID) error

	// Assign links a user to a department. Assigning twice is a no-op.
	Assign(ctx context.Context, userID types.UserID, departmentID types.DepartmentID) error

	// Unassign removes a user-department link
	Unassign(ctx context.Context, userID types.UserID, departmentID types.DepartmentID) error

	// ListAssignments retrieves the department assignments of one user
	ListAssignments(ctx context.Context, userID types.UserID) ([]*model.DepartmentAssignment, error)
}
