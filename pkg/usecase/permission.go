package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/domain/interfaces"
	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/model/auth"
	"github.com/riskledger/riskledger/pkg/domain/types"
	"github.com/riskledger/riskledger/pkg/service/directory"
	"golang.org/x/sync/errgroup"
)

type PermissionUseCase struct {
	repo          interfaces.Repository
	directory     *directory.Directory
	riskTeamNames auth.RiskTeamNames
}

func NewPermissionUseCase(repo interfaces.Repository, dir *directory.Directory, names auth.RiskTeamNames) *PermissionUseCase {
	return &PermissionUseCase{
		repo:          repo,
		directory:     dir,
		riskTeamNames: names,
	}
}

// LoadPermissions builds the permission snapshot for one identity.
//
// The consolidated view row is the fast path. When the view has no row for
// the user, role and assignments are fetched separately and the department
// names resolved through the directory; both paths produce the same shape.
// A user with no profile row at all gets the minimal snapshot. Only a fetch
// failure returns an error, and callers must then treat permissions as
// unknown (nil), which every evaluator denies.
func (uc *PermissionUseCase) LoadPermissions(ctx context.Context, userID types.UserID, email string) (*auth.Permissions, error) {
	view, err := uc.repo.User().GetDepartmentView(ctx, userID)
	if err == nil {
		return auth.NewPermissions(userID, email, view.Role, view.DepartmentIDs, view.DepartmentNames, uc.riskTeamNames), nil
	}
	if !isNotFound(err) {
		return nil, goerr.Wrap(err, "failed to load consolidated view", goerr.V(UserIDKey, userID))
	}

	var (
		user    *model.User
		assigns []*model.DepartmentAssignment
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		u, err := uc.repo.User().Get(egCtx, userID)
		if err != nil {
			if isNotFound(err) {
				// Identity exists upstream but has no profile row yet;
				// user stays nil and the minimal snapshot applies
				return nil
			}
			return goerr.Wrap(err, "failed to load user profile", goerr.V(UserIDKey, userID))
		}
		user = u
		return nil
	})
	eg.Go(func() error {
		a, err := uc.repo.Department().ListAssignments(egCtx, userID)
		if err != nil {
			return goerr.Wrap(err, "failed to load department assignments", goerr.V(UserIDKey, userID))
		}
		assigns = a
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if user == nil {
		return auth.NewMinimalPermissions(userID, email), nil
	}

	ids := make([]types.DepartmentID, 0, len(assigns))
	for _, assign := range assigns {
		ids = append(ids, assign.DepartmentID)
	}

	names, err := uc.directory.ResolveNames(ctx, ids)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve department names", goerr.V(UserIDKey, userID))
	}

	return auth.NewPermissions(userID, email, user.Role, ids, names, uc.riskTeamNames), nil
}

// PermissionSession holds the current permission snapshot for one active
// identity. Loads are tagged with the identity they were issued for, and a
// load whose identity no longer matches by the time it completes is
// discarded instead of committed. A nil snapshot means unknown, which the
// evaluator denies outright.
type PermissionSession struct {
	uc *PermissionUseCase

	mu       sync.Mutex
	identity types.UserID
	email    string
	current  *auth.Permissions
}

func NewPermissionSession(uc *PermissionUseCase) *PermissionSession {
	return &PermissionSession{uc: uc}
}

// SetIdentity switches the session to a new identity. The previous snapshot
// is dropped immediately so a stale identity's permissions can never be
// applied while the new load is in flight.
func (s *PermissionSession) SetIdentity(userID types.UserID, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = userID
	s.email = email
	s.current = nil
}

// Refresh loads permissions for the session's identity and commits the
// result only if the identity is unchanged when the load completes.
func (s *PermissionSession) Refresh(ctx context.Context) (*auth.Permissions, error) {
	s.mu.Lock()
	userID, email := s.identity, s.email
	s.mu.Unlock()

	if userID == "" {
		return nil, goerr.New("no identity set on permission session")
	}

	perms, loadErr := s.uc.LoadPermissions(ctx, userID, email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity != userID {
		return nil, goerr.Wrap(ErrStaleIdentity, "discarding permission load", goerr.V(UserIDKey, userID))
	}

	if loadErr != nil {
		s.current = nil
		return nil, loadErr
	}

	s.current = perms
	return perms, nil
}

// Current returns the committed snapshot, nil when unknown
func (s *PermissionSession) Current() *auth.Permissions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Clear discards the identity and snapshot, for logout
func (s *PermissionSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = ""
	s.email = ""
	s.current = nil
}
