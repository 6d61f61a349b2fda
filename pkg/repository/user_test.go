package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/riskledger/riskledger/pkg/domain/interfaces"
	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/types"
	"github.com/riskledger/riskledger/pkg/repository/firestore"
	"github.com/riskledger/riskledger/pkg/repository/memory"
)

func runUserRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put stores profile with normalized role", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		stored, err := repo.User().Put(ctx, &model.User{
			ID:    types.NewUserID(),
			Email: "alice@example.com",
			Name:  "Alice",
		})
		if err != nil {
			t.Fatalf("failed to put user: %v", err)
		}

		if stored.Role != types.RoleUser {
			t.Errorf("expected empty role normalized to user, got %s", stored.Role)
		}
		if stored.CreatedAt.IsZero() {
			t.Error("expected non-zero CreatedAt")
		}
	})

	t.Run("Put replaces existing profile and preserves CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := types.NewUserID()
		first, err := repo.User().Put(ctx, &model.User{ID: userID, Email: "bob@example.com", Role: types.RoleUser})
		if err != nil {
			t.Fatalf("failed to put user: %v", err)
		}

		second, err := repo.User().Put(ctx, &model.User{ID: userID, Email: "bob@example.com", Role: types.RoleAdmin})
		if err != nil {
			t.Fatalf("failed to put user again: %v", err)
		}

		if second.Role != types.RoleAdmin {
			t.Errorf("expected role=admin, got %s", second.Role)
		}
		if !second.CreatedAt.Equal(first.CreatedAt) {
			t.Error("expected CreatedAt preserved across Put")
		}
	})

	t.Run("Put rejects empty ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.User().Put(ctx, &model.User{Email: "noid@example.com"})
		if err == nil {
			t.Error("expected error for empty user ID")
		}
	})

	t.Run("Get returns ErrNotFound for unprovisioned user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.User().Get(ctx, types.NewUserID())
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GetDepartmentView combines role and assignments", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := types.NewUserID()
		if _, err := repo.User().Put(ctx, &model.User{ID: userID, Email: "carol@example.com", Role: types.RoleManager}); err != nil {
			t.Fatalf("failed to put user: %v", err)
		}

		it, err := repo.Department().Create(ctx, &model.Department{Name: "IT Security"})
		if err != nil {
			t.Fatalf("failed to create department: %v", err)
		}
		risk, err := repo.Department().Create(ctx, &model.Department{Name: "Risk"})
		if err != nil {
			t.Fatalf("failed to create department: %v", err)
		}

		if err := repo.Department().Assign(ctx, userID, it.ID); err != nil {
			t.Fatalf("failed to assign: %v", err)
		}
		if err := repo.Department().Assign(ctx, userID, risk.ID); err != nil {
			t.Fatalf("failed to assign: %v", err)
		}

		view, err := repo.User().GetDepartmentView(ctx, userID)
		if err != nil {
			t.Fatalf("failed to get department view: %v", err)
		}

		if view.UserID != userID {
			t.Errorf("expected userID=%s, got %s", userID, view.UserID)
		}
		if view.Role != types.RoleManager {
			t.Errorf("expected role=manager, got %s", view.Role)
		}
		if len(view.DepartmentIDs) != 2 {
			t.Fatalf("expected 2 department IDs, got %d", len(view.DepartmentIDs))
		}
		if len(view.DepartmentNames) != 2 {
			t.Fatalf("expected 2 department names, got %d", len(view.DepartmentNames))
		}

		names := map[string]bool{}
		for _, name := range view.DepartmentNames {
			names[name] = true
		}
		if !names["IT Security"] || !names["Risk"] {
			t.Errorf("expected names to include IT Security and Risk, got %v", view.DepartmentNames)
		}
	})

	t.Run("GetDepartmentView drops deleted departments", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := types.NewUserID()
		if _, err := repo.User().Put(ctx, &model.User{ID: userID, Email: "dave@example.com", Role: types.RoleUser}); err != nil {
			t.Fatalf("failed to put user: %v", err)
		}

		dept, err := repo.Department().Create(ctx, &model.Department{Name: "Finance"})
		if err != nil {
			t.Fatalf("failed to create department: %v", err)
		}
		if err := repo.Department().Assign(ctx, userID, dept.ID); err != nil {
			t.Fatalf("failed to assign: %v", err)
		}
		if err := repo.Department().Delete(ctx, dept.ID); err != nil {
			t.Fatalf("failed to delete department: %v", err)
		}

		view, err := repo.User().GetDepartmentView(ctx, userID)
		if err != nil {
			t.Fatalf("failed to get department view: %v", err)
		}
		if len(view.DepartmentIDs) != 0 {
			t.Errorf("expected no departments after delete, got %v", view.DepartmentIDs)
		}
	})

	t.Run("GetDepartmentView returns ErrNotFound for unknown user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.User().GetDepartmentView(ctx, types.NewUserID())
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete removes profile", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := types.NewUserID()
		if _, err := repo.User().Put(ctx, &model.User{ID: userID, Email: "eve@example.com"}); err != nil {
			t.Fatalf("failed to put user: %v", err)
		}
		if err := repo.User().Delete(ctx, userID); err != nil {
			t.Fatalf("failed to delete user: %v", err)
		}

		_, err := repo.User().Get(ctx, userID)
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestUserRepository_Memory(t *testing.T) {
	runUserRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestUserRepository_Firestore(t *testing.T) {
	runUserRepositoryTest(t, newFirestoreRepository)
}
