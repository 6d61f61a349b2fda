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

type assignmentKey struct {
	userID       types.UserID
	departmentID types.DepartmentID
}

type departmentRepository struct {
	mu          sync.RWMutex
	departments map[types.DepartmentID]*model.Department
	assignments map[assignmentKey]*model.DepartmentAssignment
}

func newDepartmentRepository() *departmentRepository {
	return &departmentRepository{
		departments: make(map[types.DepartmentID]*model.Department),
		assignments: make(map[assignmentKey]*model.DepartmentAssignment),
	}
}

func copyDepartment(d *model.Department) *model.Department {
	c := *d
	return &c
}

func (r *departmentRepository) Create(ctx context.Context, dept *model.Department) (*model.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := &model.Department{
		ID:        types.NewDepartmentID(),
		Name:      dept.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.departments[created.ID] = created
	return copyDepartment(created), nil
}

func (r *departmentRepository) Get(ctx context.Context, id types.DepartmentID) (*model.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dept, exists := r.departments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "department not found", goerr.V("id", id))
	}

	return copyDepartment(dept), nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*model.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	depts := make([]*model.Department, 0, len(r.departments))
	for _, dept := range r.departments {
		depts = append(depts, copyDepartment(dept))
	}

	sort.Slice(depts, func(i, j int) bool {
		return depts[i].Name < depts[j].Name
	})

	return depts, nil
}

func (r *departmentRepository) Update(ctx context.Context, dept *model.Department) (*model.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.departments[dept.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "department not found", goerr.V("id", dept.ID))
	}

	updated := &model.Department{
		ID:        existing.ID,
		Name:      dept.Name,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}

	r.departments[updated.ID] = updated
	return copyDepartment(updated), nil
}

func (r *departmentRepository) Delete(ctx context.Context, id types.DepartmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.departments[id]; !exists {
		return goerr.Wrap(ErrNotFound, "department not found", goerr.V("id", id))
	}

	delete(r.departments, id)
	for key := range r.assignments {
		if key.departmentID == id {
			delete(r.assignments, key)
		}
	}
	return nil
}

func (r *departmentRepository) Assign(ctx context.Context, userID types.UserID, departmentID types.DepartmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.departments[departmentID]; !exists {
		return goerr.Wrap(ErrNotFound, "department not found", goerr.V("id", departmentID))
	}

	key := assignmentKey{userID: userID, departmentID: departmentID}
	if _, exists := r.assignments[key]; exists {
		return nil
	}

	r.assignments[key] = &model.DepartmentAssignment{
		UserID:       userID,
		DepartmentID: departmentID,
		CreatedAt:    time.Now().UTC(),
	}
	return nil
}

func (r *departmentRepository) Unassign(ctx context.Context, userID types.UserID, departmentID types.DepartmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := assignmentKey{userID: userID, departmentID: departmentID}
	if _, exists := r.assignments[key]; !exists {
		return goerr.Wrap(ErrNotFound, "assignment not found",
			goerr.V("user_id", userID), goerr.V("department_id", departmentID))
	}

	delete(r.assignments, key)
	return nil
}

func (r *departmentRepository) ListAssignments(ctx context.Context, userID types.UserID) ([]*model.DepartmentAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assigns := make([]*model.DepartmentAssignment, 0)
	for key, assign := range r.assignments {
		if key.userID == userID {
			c := *assign
			assigns = append(assigns, &c)
		}
	}

	sort.Slice(assigns, func(i, j int) bool {
		return assigns[i].DepartmentID < assigns[j].DepartmentID
	})

	return assigns, nil
}
