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

type userRepository struct {
	mu    sync.RWMutex
	users map[types.UserID]*model.User

	// The consolidated department view is computed from live data, the way
	// the hosted backend maintains it as a joined view.
	depts *departmentRepository
}

func newUserRepository(depts *departmentRepository) *userRepository {
	return &userRepository{
		users: make(map[types.UserID]*model.User),
		depts: depts,
	}
}

func copyUser(u *model.User) *model.User {
	c := *u
	return &c
}

func (r *userRepository) Put(ctx context.Context, user *model.User) (*model.User, error) {
	if err := user.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := &model.User{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role.Normalize(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing, ok := r.users[user.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	}

	r.users[user.ID] = stored
	return copyUser(stored), nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
	}

	return copyUser(user), nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*model.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, copyUser(user))
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].ID < users[j].ID
	})

	return users, nil
}

func (r *userRepository) GetDepartmentView(ctx context.Context, id types.UserID) (*model.UserDepartmentView, error) {
	r.mu.RLock()
	user, exists := r.users[id]
	r.mu.RUnlock()

	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "no view row for user", goerr.V("id", id))
	}

	assigns, err := r.depts.ListAssignments(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &model.UserDepartmentView{
		UserID:          user.ID,
		Role:            user.Role,
		DepartmentIDs:   make([]types.DepartmentID, 0, len(assigns)),
		DepartmentNames: make([]string, 0, len(assigns)),
	}

	for _, assign := range assigns {
		dept, err := r.depts.Get(ctx, assign.DepartmentID)
		if err != nil {
			// Assignment to a deleted department: excluded, not an error
			continue
		}
		view.DepartmentIDs = append(view.DepartmentIDs, dept.ID)
		view.DepartmentNames = append(view.DepartmentNames, dept.Name)
	}

	return view, nil
}

func (r *userRepository) Delete(ctx context.Context, id types.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[id]; !exists {
		return goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
	}

	delete(r.users, id)
	return nil
}
