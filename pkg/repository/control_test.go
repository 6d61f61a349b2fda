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

func runControlRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	newRisk := func(t *testing.T, repo interfaces.Repository) *model.Risk {
		t.Helper()
		risk, err := repo.Risk().Create(context.Background(), &model.Risk{
			Title:      "Phishing campaigns against staff",
			Likelihood: 4,
			Impact:     3,
		})
		if err != nil {
			t.Fatalf("failed to create risk: %v", err)
		}
		return risk
	}

	t.Run("Create assigns ID and normalizes status", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		risk := newRisk(t, repo)

		created, err := repo.Control().Create(ctx, &model.Control{
			RiskID:      risk.ID,
			Title:       "Mandatory phishing awareness training",
			Description: "Quarterly training with simulated campaigns",
			Type:        types.ControlTypePreventive,
		})
		if err != nil {
			t.Fatalf("failed to create control: %v", err)
		}

		if created.ID == "" {
			t.Error("expected generated ID")
		}
		if created.RiskID != risk.ID {
			t.Errorf("expected riskID=%s, got %s", risk.ID, created.RiskID)
		}
		if created.Status != types.ControlStatusPlanned {
			t.Errorf("expected status normalized to planned, got %s", created.Status)
		}
	})

	t.Run("Create rejects missing risk ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Control().Create(ctx, &model.Control{Title: "orphan control"})
		if err == nil {
			t.Error("expected error for control without risk ID")
		}
	})

	t.Run("ListByRisk returns only that risk's controls", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		risk1 := newRisk(t, repo)
		risk2 := newRisk(t, repo)

		if _, err := repo.Control().Create(ctx, &model.Control{RiskID: risk1.ID, Title: "first"}); err != nil {
			t.Fatalf("failed to create control: %v", err)
		}
		if _, err := repo.Control().Create(ctx, &model.Control{RiskID: risk1.ID, Title: "second"}); err != nil {
			t.Fatalf("failed to create control: %v", err)
		}
		if _, err := repo.Control().Create(ctx, &model.Control{RiskID: risk2.ID, Title: "other"}); err != nil {
			t.Fatalf("failed to create control: %v", err)
		}

		controls, err := repo.Control().ListByRisk(ctx, risk1.ID)
		if err != nil {
			t.Fatalf("failed to list controls: %v", err)
		}
		if len(controls) != 2 {
			t.Fatalf("expected 2 controls, got %d", len(controls))
		}
		for _, control := range controls {
			if control.RiskID != risk1.ID {
				t.Errorf("expected riskID=%s, got %s", risk1.ID, control.RiskID)
			}
		}
	})

	t.Run("Update keeps the control attached to its risk", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		risk := newRisk(t, repo)

		created, err := repo.Control().Create(ctx, &model.Control{RiskID: risk.ID, Title: "before"})
		if err != nil {
			t.Fatalf("failed to create control: %v", err)
		}

		created.Title = "after"
		created.RiskID = types.NewRiskID()
		created.Status = types.ControlStatusImplemented
		created.EvidenceObject = "controls/evidence/abc.pdf"

		updated, err := repo.Control().Update(ctx, created)
		if err != nil {
			t.Fatalf("failed to update control: %v", err)
		}

		if updated.Title != "after" {
			t.Errorf("expected updated title, got %s", updated.Title)
		}
		if updated.RiskID != risk.ID {
			t.Errorf("expected riskID unchanged, got %s", updated.RiskID)
		}
		if updated.Status != types.ControlStatusImplemented {
			t.Errorf("expected status=implemented, got %s", updated.Status)
		}
		if updated.EvidenceObject != "controls/evidence/abc.pdf" {
			t.Errorf("expected evidence object stored, got %s", updated.EvidenceObject)
		}
	})

	t.Run("Delete removes control", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		risk := newRisk(t, repo)

		created, err := repo.Control().Create(ctx, &model.Control{RiskID: risk.ID, Title: "doomed"})
		if err != nil {
			t.Fatalf("failed to create control: %v", err)
		}

		if err := repo.Control().Delete(ctx, created.ID); err != nil {
			t.Fatalf("failed to delete control: %v", err)
		}

		_, err = repo.Control().Get(ctx, created.ID)
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestControlRepository_Memory(t *testing.T) {
	runControlRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestControlRepository_Firestore(t *testing.T) {
	runControlRepositoryTest(t, newFirestoreRepository)
}
