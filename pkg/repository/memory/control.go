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

type controlRepository struct {
	mu       sync.RWMutex
	controls map[types.ControlID]*model.Control
}

func newControlRepository() *controlRepository {
	return &controlRepository{
		controls: make(map[types.ControlID]*model.Control),
	}
}

func copyControl(c *model.Control) *model.Control {
	cp := *c
	return &cp
}

func (r *controlRepository) Create(ctx context.Context, control *model.Control) (*model.Control, error) {
	if err := control.RiskID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "control requires a risk ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyControl(control)
	created.ID = types.NewControlID()
	created.Status = control.Status.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.controls[created.ID] = created
	return copyControl(created), nil
}

func (r *controlRepository) Get(ctx context.Context, id types.ControlID) (*model.Control, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	control, exists := r.controls[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", id))
	}

	return copyControl(control), nil
}

func (r *controlRepository) ListByRisk(ctx context.Context, riskID types.RiskID) ([]*model.Control, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	controls := make([]*model.Control, 0)
	for _, control := range r.controls {
		if control.RiskID == riskID {
			controls = append(controls, copyControl(control))
		}
	}

	sort.Slice(controls, func(i, j int) bool {
		if controls[i].CreatedAt.Equal(controls[j].CreatedAt) {
			return controls[i].ID < controls[j].ID
		}
		return controls[i].CreatedAt.Before(controls[j].CreatedAt)
	})

	return controls, nil
}

func (r *controlRepository) Update(ctx context.Context, control *model.Control) (*model.Control, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.controls[control.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", control.ID))
	}

	updated := copyControl(control)
	updated.RiskID = existing.RiskID
	updated.Status = control.Status.Normalize()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.controls[updated.ID] = updated
	return copyControl(updated), nil
}

func (r *controlRepository) Delete(ctx context.Context, id types.ControlID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.controls[id]; !exists {
		return goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", id))
	}

	delete(r.controls, id)
	return nil
}
