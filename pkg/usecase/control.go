package usecase

import (
	"context"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/domain/interfaces"
	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/model/auth"
	"github.com/riskledger/riskledger/pkg/domain/types"
	"github.com/riskledger/riskledger/pkg/service/evidence"
	"github.com/riskledger/riskledger/pkg/utils/async"
)

type ControlUseCase struct {
	repo          interfaces.Repository
	evidenceStore *evidence.Service
}

func NewControlUseCase(repo interfaces.Repository, store *evidence.Service) *ControlUseCase {
	return &ControlUseCase{
		repo:          repo,
		evidenceStore: store,
	}
}

// ControlInput carries the mutable fields of a control
type ControlInput struct {
	Title       string
	Description string
	Type        types.ControlType
	Status      types.ControlStatus
}

// riskFor resolves the risk a control operation targets and checks the
// caller can see it at all before any management check.
func (uc *ControlUseCase) riskFor(ctx context.Context, riskID types.RiskID) (*model.Risk, error) {
	risk, err := uc.repo.Risk().Get(ctx, riskID)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrRiskNotFound, "risk not found", goerr.V(RiskIDKey, riskID))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V(RiskIDKey, riskID))
	}

	perms := auth.PermissionsFromContext(ctx)
	if !perms.CanViewRisk(risk.DepartmentID) {
		return nil, goerr.Wrap(ErrRiskNotFound, "risk not found", goerr.V(RiskIDKey, riskID))
	}

	return risk, nil
}

func (uc *ControlUseCase) Create(ctx context.Context, riskID types.RiskID, input *ControlInput) (*model.Control, error) {
	risk, err := uc.riskFor(ctx, riskID)
	if err != nil {
		return nil, err
	}

	perms := auth.PermissionsFromContext(ctx)
	if !perms.CanManageControls(risk.DepartmentID) {
		return nil, goerr.Wrap(ErrPermissionDenied, "cannot manage controls", goerr.V(RiskIDKey, riskID))
	}

	if input.Title == "" {
		return nil, goerr.New("control title is required")
	}

	created, err := uc.repo.Control().Create(ctx, &model.Control{
		RiskID:      riskID,
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Status:      input.Status,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create control")
	}

	return created, nil
}

func (uc *ControlUseCase) ListByRisk(ctx context.Context, riskID types.RiskID) ([]*model.Control, error) {
	if _, err := uc.riskFor(ctx, riskID); err != nil {
		return nil, err
	}

	controls, err := uc.repo.Control().ListByRisk(ctx, riskID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list controls", goerr.V(RiskIDKey, riskID))
	}

	return controls, nil
}

func (uc *ControlUseCase) get(ctx context.Context, id types.ControlID) (*model.Control, *model.Risk, error) {
	control, err := uc.repo.Control().Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, goerr.Wrap(ErrControlNotFound, "control not found", goerr.V(ControlIDKey, id))
		}
		return nil, nil, goerr.Wrap(err, "failed to get control", goerr.V(ControlIDKey, id))
	}

	risk, err := uc.riskFor(ctx, control.RiskID)
	if err != nil {
		return nil, nil, err
	}

	return control, risk, nil
}

func (uc *ControlUseCase) Get(ctx context.Context, id types.ControlID) (*model.Control, error) {
	control, _, err := uc.get(ctx, id)
	return control, err
}

func (uc *ControlUseCase) Update(ctx context.Context, id types.ControlID, input *ControlInput) (*model.Control, error) {
	control, risk, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}

	perms := auth.PermissionsFromContext(ctx)
	if !perms.CanManageControls(risk.DepartmentID) {
		return nil, goerr.Wrap(ErrPermissionDenied, "cannot manage controls", goerr.V(ControlIDKey, id))
	}

	if input.Title == "" {
		return nil, goerr.New("control title is required")
	}

	control.Title = input.Title
	control.Description = input.Description
	control.Type = input.Type
	control.Status = input.Status

	updated, err := uc.repo.Control().Update(ctx, control)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update control", goerr.V(ControlIDKey, id))
	}

	return updated, nil
}

func (uc *ControlUseCase) Delete(ctx context.Context, id types.ControlID) error {
	control, risk, err := uc.get(ctx, id)
	if err != nil {
		return err
	}

	perms := auth.PermissionsFromContext(ctx)
	if !perms.CanManageControls(risk.DepartmentID) {
		return goerr.Wrap(ErrPermissionDenied, "cannot manage controls", goerr.V(ControlIDKey, id))
	}

	if err := uc.repo.Control().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete control", goerr.V(ControlIDKey, id))
	}

	// The evidence object is unreachable once the control row is gone, so
	// removal does not need to block the response. Failures are logged.
	if uc.evidenceStore != nil && control.EvidenceObject != "" {
		key := control.EvidenceObject
		async.Dispatch(ctx, func(ctx context.Context) error {
			return uc.evidenceStore.Delete(ctx, key)
		})
	}

	return nil
}

// AttachEvidence uploads an evidence file for a control and records its
// object key. Managing controls is delegated to the owning department, so
// the gate here is CanManageControls, not evidence review.
func (uc *ControlUseCase) AttachEvidence(ctx context.Context, id types.ControlID, filename, contentType string, r io.Reader) (*model.Control, error) {
	if uc.evidenceStore == nil {
		return nil, goerr.New("evidence store is not configured")
	}

	control, risk, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}

	perms := auth.PermissionsFromContext(ctx)
	if !perms.CanManageControls(risk.DepartmentID) {
		return nil, goerr.Wrap(ErrPermissionDenied, "cannot manage controls", goerr.V(ControlIDKey, id))
	}

	key := uc.evidenceStore.ObjectKey(id, filename)
	if err := uc.evidenceStore.Put(ctx, key, contentType, r); err != nil {
		return nil, err
	}

	control.EvidenceObject = key
	updated, err := uc.repo.Control().Update(ctx, control)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to record evidence object", goerr.V(ControlIDKey, id))
	}

	return updated, nil
}

// EvidenceURL returns a short-lived download URL for a control's evidence.
// Reviewing evidence is narrower than managing controls: only admins and
// Risk-team users may fetch it.
func (uc *ControlUseCase) EvidenceURL(ctx context.Context, id types.ControlID) (string, error) {
	if uc.evidenceStore == nil {
		return "", goerr.New("evidence store is not configured")
	}

	control, _, err := uc.get(ctx, id)
	if err != nil {
		return "", err
	}

	perms := auth.PermissionsFromContext(ctx)
	if !perms.CanViewEvidence() {
		return "", goerr.Wrap(ErrPermissionDenied, "cannot view evidence", goerr.V(ControlIDKey, id))
	}

	if control.EvidenceObject == "" {
		return "", goerr.Wrap(ErrControlNotFound, "control has no evidence", goerr.V(ControlIDKey, id))
	}

	return uc.evidenceStore.SignedURL(ctx, control.EvidenceObject)
}
