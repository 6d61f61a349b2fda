package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/domain/interfaces"
	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/model/auth"
	"github.com/riskledger/riskledger/pkg/domain/types"
)

type UserUseCase struct {
	repo interfaces.Repository
}

func NewUserUseCase(repo interfaces.Repository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Provision creates the profile row for an authenticated identity if it
// does not exist yet. New profiles start at the user role; until this runs
// the identity operates on the minimal permission snapshot.
func (uc *UserUseCase) Provision(ctx context.Context, userID types.UserID, email, name string) (*model.User, error) {
	existing, err := uc.repo.User().Get(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !isNotFound(err) {
		return nil, goerr.Wrap(err, "failed to check user profile", goerr.V(UserIDKey, userID))
	}

	created, err := uc.repo.User().Put(ctx, &model.User{
		ID:    userID,
		Email: email,
		Name:  name,
		Role:  types.RoleUser,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to provision user profile", goerr.V(UserIDKey, userID))
	}

	return created, nil
}

func (uc *UserUseCase) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	if err := requireKnown(ctx); err != nil {
		return nil, err
	}

	user, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrUserNotFound, "user not found", goerr.V(UserIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V(UserIDKey, id))
	}

	return user, nil
}

func (uc *UserUseCase) List(ctx context.Context) ([]*model.User, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	users, err := uc.repo.User().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users")
	}

	return users, nil
}

// SetRole changes a user's role. Roles feed directly into the permission
// model, so this is admin-only.
func (uc *UserUseCase) SetRole(ctx context.Context, id types.UserID, role types.Role) (*model.User, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, goerr.New("invalid role", goerr.V("role", role))
	}

	// An admin cannot demote themselves; losing the last admin would lock
	// the directory out of role management entirely.
	if perms := auth.PermissionsFromContext(ctx); perms != nil && perms.UserID == id && role != types.RoleAdmin {
		return nil, goerr.Wrap(ErrPermissionDenied, "cannot change own admin role", goerr.V(UserIDKey, id))
	}

	user, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrUserNotFound, "user not found", goerr.V(UserIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V(UserIDKey, id))
	}

	user.Role = role
	updated, err := uc.repo.User().Put(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update user role", goerr.V(UserIDKey, id))
	}

	return updated, nil
}
