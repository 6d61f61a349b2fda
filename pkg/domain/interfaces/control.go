package interfaces

import (
	"context"

	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/types"
)

type ControlRepository interface {
	// Create creates a new control with a generated ID
	Create(ctx context.Context, control *model.Control) (*model.Control, error)

	// Get retrieves a control by ID
	Get(ctx context.Context, id types.ControlID) (*model.Control, error)

	// ListByRisk retrieves all controls attached to one risk
	ListByRisk(ctx context.Context, riskID types.RiskID) ([]*model.Control, error)

	// Update updates an existing control
	Update(ctx context.Context, control *model.Control) (*model.Control, error)

	// Delete deletes a control by ID
	Delete(ctx context.Context, id types.ControlID) error
}
