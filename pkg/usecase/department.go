package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/domain/interfaces"
	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/model/auth"
	"github.com/riskledger/riskledger/pkg/domain/types"
	"github.com/riskledger/riskledger/pkg/service/directory"
)

type DepartmentUseCase struct {
	repo      interfaces.Repository
	directory *directory.Directory
}

func NewDepartmentUseCase(repo interfaces.Repository, dir *directory.Directory) *DepartmentUseCase {
	return &DepartmentUseCase{
		repo:      repo,
		directory: dir,
	}
}

// requireAdmin gates directory mutations. Department structure feeds the
// permission model itself, so only admins may change it.
func requireAdmin(ctx context.Context) error {
	perms := auth.PermissionsFromContext(ctx)
	if perms == nil || !perms.IsAdmin {
		return goerr.Wrap(ErrPermissionDenied, "admin role required")
	}
	return nil
}

func requireKnown(ctx context.Context) error {
	if auth.PermissionsFromContext(ctx) == nil {
		return goerr.Wrap(ErrPermissionDenied, "permissions unknown")
	}
	return nil
}

func (uc *DepartmentUseCase) Create(ctx context.Context, name string) (*model.Department, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, goerr.New("department name is required")
	}

	created, err := uc.repo.Department().Create(ctx, &model.Department{Name: name})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create department")
	}

	uc.directory.Invalidate()
	return created, nil
}

// List is available to every caller with known permissions; department
// names are not sensitive and the UI needs them for assignment pickers.
func (uc *DepartmentUseCase) List(ctx context.Context) ([]*model.Department, error) {
	if err := requireKnown(ctx); err != nil {
		return nil, err
	}
	return uc.directory.List(ctx)
}

func (uc *DepartmentUseCase) Get(ctx context.Context, id types.DepartmentID) (*model.Department, error) {
	if err := requireKnown(ctx); err != nil {
		return nil, err
	}

	dept, err := uc.repo.Department().Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrDepartmentNotFound, "department not found", goerr.V(DepartmentIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get department", goerr.V(DepartmentIDKey, id))
	}

	return dept, nil
}

func (uc *DepartmentUseCase) Rename(ctx context.Context, id types.DepartmentID, name string) (*model.Department, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, goerr.New("department name is required")
	}

	updated, err := uc.repo.Department().Update(ctx, &model.Department{ID: id, Name: name})
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrDepartmentNotFound, "department not found", goerr.V(DepartmentIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to update department", goerr.V(DepartmentIDKey, id))
	}

	uc.directory.Invalidate()
	return updated, nil
}

func (uc *DepartmentUseCase) Delete(ctx context.Context, id types.DepartmentID) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	if err := uc.repo.Department().Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrDepartmentNotFound, "department not found", goerr.V(DepartmentIDKey, id))
		}
		return goerr.Wrap(err, "failed to delete department", goerr.V(DepartmentIDKey, id))
	}

	uc.directory.Invalidate()
	return nil
}

func (uc *DepartmentUseCase) Assign(ctx context.Context, userID types.UserID, departmentID types.DepartmentID) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	if err := uc.repo.Department().Assign(ctx, userID, departmentID); err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrDepartmentNotFound, "department not found", goerr.V(DepartmentIDKey, departmentID))
		}
		return goerr.Wrap(err, "failed to assign user",
			goerr.V(UserIDKey, userID), goerr.V(DepartmentIDKey, departmentID))
	}

	return nil
}

func (uc *DepartmentUseCase) Unassign(ctx context.Context, userID types.UserID, departmentID types.DepartmentID) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	if err := uc.repo.Department().Unassign(ctx, userID, departmentID); err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrDepartmentNotFound, "assignment not found", goerr.V(DepartmentIDKey, departmentID))
		}
		return goerr.Wrap(err, "failed to unassign user",
			goerr.V(UserIDKey, userID), goerr.V(DepartmentIDKey, departmentID))
	}

	return nil
}
