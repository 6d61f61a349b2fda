package interfaces

import (
	"context"

	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/types"
)

type UserRepository interface {
	// Put creates or replaces a user profile row
	Put(ctx context.Context, user *model.User) (*model.User, error)

	// Get retrieves a user profile by ID. Returns ErrNotFound when no
	// profile row exists; that is a legitimate absence, not a failure.
	Get(ctx context.Context, id types.UserID) (*model.User, error)

	// List retrieves all user profiles
	List(ctx context.Context) ([]*model.User, error)

	// GetDepartmentView retrieves the consolidated row combining role and
	// department assignments for one user. Returns ErrNotFound when the
	// view has no row for the user.
	GetDepartmentView(ctx context.Context, id types.UserID) (*model.UserDepartmentView, error)

	// Delete deletes a user profile by ID
	Delete(ctx context.Context, id types.UserID) error
}
