package auth

import (
	"slices"
	"strings"

	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/types"
)

// RiskTeamNames is the set of department names whose members are treated as
// the organization-wide Risk team. Matching is case-insensitive. This is a
// deployment-time constant, not derived from data.
type RiskTeamNames []string

// DefaultRiskTeamNames returns the default Risk-team department names
func DefaultRiskTeamNames() RiskTeamNames {
	return RiskTeamNames{
		"Risk",
		"Risk Team",
		"Risk Department",
		"Risk Management",
	}
}

// Match reports whether the given department name counts as Risk team
func (n RiskTeamNames) Match(name string) bool {
	for _, candidate := range n {
		if strings.EqualFold(candidate, name) {
			return true
		}
	}
	return false
}

// Permissions is an immutable snapshot of what one identity is allowed to
// do. It is recomputed per session or on identity change and replaced
// wholesale, never patched in place.
//
// A nil *Permissions means permissions are UNKNOWN (the load failed): every
// evaluation on a nil receiver denies. This is distinct from a degraded
// minimal snapshot (RoleUser, no departments), which is a valid result that
// evaluates normally.
type Permissions struct {
	UserID          types.UserID         `json:"user_id"`
	Email           string               `json:"email"`
	Role            types.Role           `json:"role"`
	DepartmentIDs   []types.DepartmentID `json:"department_ids"`
	DepartmentNames []string             `json:"department_names"`
	IsAdmin         bool                 `json:"is_admin"`
	IsRiskTeam      bool                 `json:"is_risk_team"`
}

// NewPermissions builds a snapshot. IsAdmin and IsRiskTeam are derived here
// and only here: IsAdmin from the role, IsRiskTeam from the department names
// against the Risk-team name set. They are never set independently.
func NewPermissions(userID types.UserID, email string, role types.Role, departmentIDs []types.DepartmentID, departmentNames []string, riskTeam RiskTeamNames) *Permissions {
	role = role.Normalize()

	isRiskTeam := false
	for _, name := range departmentNames {
		if riskTeam.Match(name) {
			isRiskTeam = true
			break
		}
	}

	return &Permissions{
		UserID:          userID,
		Email:           email,
		Role:            role,
		DepartmentIDs:   slices.Clone(departmentIDs),
		DepartmentNames: slices.Clone(departmentNames),
		IsAdmin:         role == types.RoleAdmin,
		IsRiskTeam:      isRiskTeam,
	}
}

// NewMinimalPermissions builds the degraded default for an identity that
// exists in the authentication provider but has no profile row yet: RoleUser,
// no departments, no privilege flags. The result is non-nil and evaluates
// normally, unlike the unknown (nil) case.
func NewMinimalPermissions(userID types.UserID, email string) *Permissions {
	return &Permissions{
		UserID:          userID,
		Email:           email,
		Role:            types.RoleUser,
		DepartmentIDs:   []types.DepartmentID{},
		DepartmentNames: []string{},
	}
}

func (p *Permissions) hasDepartment(departmentID types.DepartmentID) bool {
	// An absent department is never a match; it must not behave as a
	// wildcard for unassigned risks.
	if departmentID == "" {
		return false
	}
	return slices.Contains(p.DepartmentIDs, departmentID)
}

// CanViewRisk reports whether the user may view a risk owned by the given
// department. Admins and Risk-team users see all risks org-wide; everyone
// else only sees risks of their assigned departments.
func (p *Permissions) CanViewRisk(departmentID types.DepartmentID) bool {
	if p == nil {
		return false
	}
	if p.IsAdmin {
		return true
	}
	if p.IsRiskTeam {
		return true
	}
	return p.hasDepartment(departmentID)
}

// CanEditRisk reports whether the user may mutate a risk. Editing is
// narrower than viewing: department membership alone is not enough, so a
// department user cannot rewrite their own risk's scoring.
func (p *Permissions) CanEditRisk(departmentID types.DepartmentID) bool {
	if p == nil {
		return false
	}
	if p.IsAdmin {
		return true
	}
	return p.IsRiskTeam
}

// CanManageControls reports whether the user may manage mitigating controls
// for a risk of the given department. Control management is delegated to the
// owning department, independent of Risk-team status.
func (p *Permissions) CanManageControls(departmentID types.DepartmentID) bool {
	if p == nil {
		return false
	}
	if p.IsAdmin {
		return true
	}
	return p.hasDepartment(departmentID)
}

// CanViewEvidence reports whether the user may review uploaded evidence
// files. Only admins and the Risk team: department users who manage controls
// do not automatically get historical evidence access.
func (p *Permissions) CanViewEvidence() bool {
	if p == nil {
		return false
	}
	return p.IsAdmin || p.IsRiskTeam
}

// FilterVisibleRisks returns the subset of risks the user may view,
// preserving the relative order of the input. A nil snapshot yields an empty
// slice, never an error. The filter is idempotent.
func FilterVisibleRisks(risks []*model.Risk, perms *Permissions) []*model.Risk {
	visible := make([]*model.Risk, 0, len(risks))
	if perms == nil {
		return visible
	}
	for _, risk := range risks {
		if perms.CanViewRisk(risk.DepartmentID) {
			visible = append(visible, risk)
		}
	}
	return visible
}
