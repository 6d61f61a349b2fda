package directory_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/riskledger/riskledger/pkg/domain/interfaces"
	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/types"
	"github.com/riskledger/riskledger/pkg/repository/memory"
	"github.com/riskledger/riskledger/pkg/service/directory"
)

type countingRepo struct {
	interfaces.Repository
	depts *countingDepartments
}

func (r *countingRepo) Department() interfaces.DepartmentRepository {
	return r.depts
}

type countingDepartments struct {
	interfaces.DepartmentRepository
	listCalls int
}

func (r *countingDepartments) List(ctx context.Context) ([]*model.Department, error) {
	r.listCalls++
	return r.DepartmentRepository.List(ctx)
}

func newCountingRepo() *countingRepo {
	repo := memory.New()
	return &countingRepo{
		Repository: repo,
		depts:      &countingDepartments{DepartmentRepository: repo.Department()},
	}
}

func TestDirectoryCachesList(t *testing.T) {
	ctx := context.Background()
	repo := newCountingRepo()

	_, err := repo.Department().Create(ctx, &model.Department{Name: "Finance"})
	gt.NoError(t, err)
	repo.depts.listCalls = 0

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	dir := directory.New(repo, directory.WithClock(func() time.Time { return now }))

	depts, err := dir.List(ctx)
	gt.NoError(t, err)
	gt.Array(t, depts).Length(1)

	_, err = dir.List(ctx)
	gt.NoError(t, err)
	gt.Value(t, repo.depts.listCalls).Equal(1)

	// Within the TTL the cache is still served
	now = now.Add(4 * time.Minute)
	_, err = dir.List(ctx)
	gt.NoError(t, err)
	gt.Value(t, repo.depts.listCalls).Equal(1)

	// Past the TTL the repository is read again
	now = now.Add(2 * time.Minute)
	_, err = dir.List(ctx)
	gt.NoError(t, err)
	gt.Value(t, repo.depts.listCalls).Equal(2)
}

func TestDirectoryInvalidate(t *testing.T) {
	ctx := context.Background()
	repo := newCountingRepo()

	_, err := repo.Department().Create(ctx, &model.Department{Name: "Legal"})
	gt.NoError(t, err)
	repo.depts.listCalls = 0

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	dir := directory.New(repo, directory.WithClock(func() time.Time { return now }))

	_, err = dir.List(ctx)
	gt.NoError(t, err)
	gt.Value(t, repo.depts.listCalls).Equal(1)

	dir.Invalidate()

	_, err = dir.List(ctx)
	gt.NoError(t, err)
	gt.Value(t, repo.depts.listCalls).Equal(2)
}

func TestDirectoryResolveNames(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	it, err := repo.Department().Create(ctx, &model.Department{Name: "IT Security"})
	gt.NoError(t, err)
	risk, err := repo.Department().Create(ctx, &model.Department{Name: "Risk"})
	gt.NoError(t, err)

	dir := directory.New(repo)

	names, err := dir.ResolveNames(ctx, []types.DepartmentID{it.ID, types.NewDepartmentID(), risk.ID})
	gt.NoError(t, err)
	gt.Array(t, names).Equal([]string{"IT Security", "Risk"})
}
