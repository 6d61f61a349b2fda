package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/types"
)

type riskRepository struct {
	mu    sync.RWMutex
	risks map[types.RiskID]*model.Risk
}

func newRiskRepository() *riskRepository {
	return &riskRepository{
		risks: make(map[types.RiskID]*model.Risk),
	}
}

func copyRisk(r *model.Risk) *model.Risk {
	c := *r
	if r.Tags != nil {
		c.Tags = append([]string(nil), r.Tags...)
	}
	return &c
}

func (r *riskRepository) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyRisk(risk)
	created.ID = types.NewRiskID()
	created.Status = risk.Status.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.risks[created.ID] = created
	return copyRisk(created), nil
}

func (r *riskRepository) Get(ctx context.Context, id types.RiskID) (*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risk, exists := r.risks[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
	}

	return copyRisk(risk), nil
}

func (r *riskRepository) List(ctx context.Context) ([]*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risks := make([]*model.Risk, 0, len(r.risks))
	for _, risk := range r.risks {
		risks = append(risks, copyRisk(risk))
	}

	sort.Slice(risks, func(i, j int) bool {
		if risks[i].CreatedAt.Equal(risks[j].CreatedAt) {
			return risks[i].ID < risks[j].ID
		}
		return risks[i].CreatedAt.Before(risks[j].CreatedAt)
	})

	return risks, nil
}

func (r *riskRepository) ListByDepartment(ctx context.Context, departmentID types.DepartmentID) ([]*model.Risk, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	risks := make([]*model.Risk, 0, len(all))
	for _, risk := range all {
		if risk.DepartmentID == departmentID {
			risks = append(risks, risk)
		}
	}

	return risks, nil
}

func (r *riskRepository) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.risks[risk.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", risk.ID))
	}

	updated := copyRisk(risk)
	updated.Status = risk.Status.Normalize()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.risks[updated.ID] = updated
	return copyRisk(updated), nil
}

func (r *riskRepository) Delete(ctx context.Context, id types.RiskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.risks[id]; !exists {
		return goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
	}

	delete(r.risks, id)
	return nil
}
