package directory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/domain/interfaces"
	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/types"
)

const cacheTTL = 5 * time.Minute

// Directory serves department lookups from a short-lived cache. Department
// rows change rarely but are read on every permission load, so the full list
// is cached and refreshed at most once per TTL.
type Directory struct {
	repo interfaces.Repository
	now  func() time.Time

	mu        sync.Mutex
	cached    []*model.Department
	expiresAt time.Time
}

// Option is a functional option for Directory configuration
type Option func(*Directory)

// WithClock replaces the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(d *Directory) {
		d.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *Directory {
	d := &Directory{
		repo: repo,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// List returns all departments, from cache when fresh
func (d *Directory) List(ctx context.Context) ([]*model.Department, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cached != nil && d.now().Before(d.expiresAt) {
		return d.cached, nil
	}

	depts, err := d.repo.Department().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list departments")
	}

	d.cached = depts
	d.expiresAt = d.now().Add(cacheTTL)
	return depts, nil
}

// ResolveNames maps department IDs to names. IDs that resolve to no known
// department are dropped, not errors; the caller gets the names that exist.
func (d *Directory) ResolveNames(ctx context.Context, ids []types.DepartmentID) ([]string, error) {
	depts, err := d.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[types.DepartmentID]string, len(depts))
	for _, dept := range depts {
		byID[dept.ID] = dept.Name
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}

	return names, nil
}

// Invalidate drops the cache so the next read hits the repository
func (d *Directory) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cached = nil
	d.expiresAt = time.Time{}
}
