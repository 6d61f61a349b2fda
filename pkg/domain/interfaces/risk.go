package interfaces

import (
	"context"

	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/types"
)

type RiskRepository interface {
	// Create creates a new risk with a generated ID
	Create(ctx context.Context, risk *model.Risk) (*model.Risk, error)

	// Get retrieves a risk by ID
	Get(ctx context.Context, id types.RiskID) (*model.Risk, error)

	// List retrieves all risks ordered by creation time
	List(ctx context.Context) ([]*model.Risk, error)

	// ListByDepartment retrieves risks owned by one department
	ListByDepartment(ctx context.Context, departmentID types.DepartmentID) ([]*model.Risk, error)

	// Update updates an existing risk
	Update(ctx context.Context, risk *model.Risk) (*model.Risk, error)

	// Delete deletes a risk by ID
	Delete(ctx context.Context, id types.RiskID) error
}
