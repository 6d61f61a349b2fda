package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/riskledger/riskledger/pkg/domain/types"
	"github.com/riskledger/riskledger/pkg/repository/memory"
	"github.com/riskledger/riskledger/pkg/usecase"
)

func TestDepartmentUseCase_AdminOnlyMutations(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)

	t.Run("non-admin cannot create", func(t *testing.T) {
		_, err := uc.Department.Create(deptUserCtx("dept-x"), "Shadow IT")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrPermissionDenied)).True()
	})

	t.Run("risk team cannot create either", func(t *testing.T) {
		_, err := uc.Department.Create(riskTeamCtx(), "Shadow IT")
		gt.Error(t, err)
	})

	t.Run("admin manages the directory", func(t *testing.T) {
		created, err := uc.Department.Create(adminCtx(), "Operations")
		gt.NoError(t, err).Required()

		renamed, err := uc.Department.Rename(adminCtx(), created.ID, "Global Operations")
		gt.NoError(t, err).Required()
		gt.Value(t, renamed.Name).Equal("Global Operations")

		userID := types.NewUserID()
		gt.NoError(t, uc.Department.Assign(adminCtx(), userID, created.ID))
		gt.NoError(t, uc.Department.Unassign(adminCtx(), userID, created.ID))
		gt.NoError(t, uc.Department.Delete(adminCtx(), created.ID))
	})
}

func TestDepartmentUseCase_RenameVisibleImmediately(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)

	created, err := uc.Department.Create(adminCtx(), "Risk")
	gt.NoError(t, err).Required()

	// Warm the directory cache
	depts, err := uc.Department.List(adminCtx())
	gt.NoError(t, err).Required()
	gt.Array(t, depts).Length(1)

	// Rename invalidates the cache so the new name is served at once
	_, err = uc.Department.Rename(adminCtx(), created.ID, "Risk Management")
	gt.NoError(t, err).Required()

	depts, err = uc.Department.List(adminCtx())
	gt.NoError(t, err).Required()
	gt.Value(t, depts[0].Name).Equal("Risk Management")
}

func TestDepartmentUseCase_ListRequiresKnownPermissions(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)

	_, err := uc.Department.List(context.Background())
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrPermissionDenied)).True()

	_, err = uc.Department.List(deptUserCtx("dept-x"))
	gt.NoError(t, err)
}

func TestUserUseCase_Roles(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)

	user, err := uc.User.Provision(context.Background(), types.NewUserID(), "emp@example.com", "Employee")
	gt.NoError(t, err).Required()
	gt.Value(t, user.Role).Equal(types.RoleUser)

	t.Run("provision is idempotent", func(t *testing.T) {
		again, err := uc.User.Provision(context.Background(), user.ID, "emp@example.com", "Employee")
		gt.NoError(t, err).Required()
		gt.Value(t, again.Role).Equal(types.RoleUser)
		gt.Bool(t, again.CreatedAt.Equal(user.CreatedAt)).True()
	})

	t.Run("role change is admin-only", func(t *testing.T) {
		_, err := uc.User.SetRole(deptUserCtx("dept-x"), user.ID, types.RoleManager)
		gt.Error(t, err)

		updated, err := uc.User.SetRole(adminCtx(), user.ID, types.RoleManager)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Role).Equal(types.RoleManager)
	})

	t.Run("invalid role is rejected", func(t *testing.T) {
		_, err := uc.User.SetRole(adminCtx(), user.ID, types.Role("superuser"))
		gt.Error(t, err)
	})

	t.Run("user listing is admin-only", func(t *testing.T) {
		_, err := uc.User.List(deptUserCtx("dept-x"))
		gt.Error(t, err)

		users, err := uc.User.List(adminCtx())
		gt.NoError(t, err).Required()
		gt.Array(t, users).Length(1)
	})
}
