package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/domain/interfaces"
	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/model/auth"
	"github.com/riskledger/riskledger/pkg/domain/types"
)

type RiskUseCase struct {
	repo interfaces.Repository
}

func NewRiskUseCase(repo interfaces.Repository) *RiskUseCase {
	return &RiskUseCase{repo: repo}
}

// RiskInput carries the mutable fields of a risk
type RiskInput struct {
	Title        string
	Description  string
	DepartmentID types.DepartmentID
	Likelihood   types.Likelihood
	Impact       types.Impact
	Status       types.RiskStatus
	OwnerID      types.UserID
	Tags         []string
}

func (in *RiskInput) validate() error {
	if in.Title == "" {
		return goerr.New("risk title is required")
	}
	if err := in.Likelihood.Validate(); err != nil {
		return goerr.Wrap(err, "invalid likelihood")
	}
	if err := in.Impact.Validate(); err != nil {
		return goerr.Wrap(err, "invalid impact")
	}
	return nil
}

func (uc *RiskUseCase) Create(ctx context.Context, input *RiskInput) (*model.Risk, error) {
	perms := auth.PermissionsFromContext(ctx)
	if !perms.CanEditRisk(input.DepartmentID) {
		return nil, goerr.Wrap(ErrPermissionDenied, "cannot create risk", goerr.V(DepartmentIDKey, input.DepartmentID))
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	created, err := uc.repo.Risk().Create(ctx, &model.Risk{
		Title:        input.Title,
		Description:  input.Description,
		DepartmentID: input.DepartmentID,
		Likelihood:   input.Likelihood,
		Impact:       input.Impact,
		Status:       input.Status,
		OwnerID:      input.OwnerID,
		Tags:         input.Tags,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create risk")
	}

	return created, nil
}

func (uc *RiskUseCase) Get(ctx context.Context, id types.RiskID) (*model.Risk, error) {
	risk, err := uc.repo.Risk().Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrRiskNotFound, "risk not found", goerr.V(RiskIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V(RiskIDKey, id))
	}

	perms := auth.PermissionsFromContext(ctx)
	if !perms.CanViewRisk(risk.DepartmentID) {
		// Indistinguishable from absence so visibility cannot be probed
		return nil, goerr.Wrap(ErrRiskNotFound, "risk not found", goerr.V(RiskIDKey, id))
	}

	return risk, nil
}

// ListVisible returns the risks the caller is allowed to see, in creation
// order. Unknown permissions yield an empty list, not an error.
func (uc *RiskUseCase) ListVisible(ctx context.Context) ([]*model.Risk, error) {
	risks, err := uc.repo.Risk().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks")
	}

	return auth.FilterVisibleRisks(risks, auth.PermissionsFromContext(ctx)), nil
}

func (uc *RiskUseCase) Update(ctx context.Context, id types.RiskID, input *RiskInput) (*model.Risk, error) {
	existing, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	perms := auth.PermissionsFromContext(ctx)
	if !perms.CanEditRisk(existing.DepartmentID) || !perms.CanEditRisk(input.DepartmentID) {
		return nil, goerr.Wrap(ErrPermissionDenied, "cannot edit risk", goerr.V(RiskIDKey, id))
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	existing.Title = input.Title
	existing.Description = input.Description
	existing.DepartmentID = input.DepartmentID
	existing.Likelihood = input.Likelihood
	existing.Impact = input.Impact
	existing.Status = input.Status
	existing.OwnerID = input.OwnerID
	existing.Tags = input.Tags

	updated, err := uc.repo.Risk().Update(ctx, existing)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update risk", goerr.V(RiskIDKey, id))
	}

	return updated, nil
}

func (uc *RiskUseCase) Delete(ctx context.Context, id types.RiskID) error {
	existing, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}

	perms := auth.PermissionsFromContext(ctx)
	if !perms.CanEditRisk(existing.DepartmentID) {
		return goerr.Wrap(ErrPermissionDenied, "cannot delete risk", goerr.V(RiskIDKey, id))
	}

	if err := uc.repo.Risk().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete risk", goerr.V(RiskIDKey, id))
	}

	return nil
}
