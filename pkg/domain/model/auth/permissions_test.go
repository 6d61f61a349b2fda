package auth_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/model/auth"
	"github.com/riskledger/riskledger/pkg/domain/types"
)

func TestRiskTeamNames_Match(t *testing.T) {
	names := auth.DefaultRiskTeamNames()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"exact", "Risk", true},
		{"lowercase", "risk", true},
		{"uppercase", "RISK TEAM", true},
		{"risk management", "Risk Management", true},
		{"risk department mixed case", "risk DEPARTMENT", true},
		{"finance", "Finance", false},
		{"substring is not a match", "Risky Business", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, names.Match(tt.input)).Equal(tt.want)
		})
	}
}

func TestNewPermissions_DerivedFlags(t *testing.T) {
	riskTeam := auth.DefaultRiskTeamNames()

	t.Run("admin role sets IsAdmin", func(t *testing.T) {
		p := auth.NewPermissions("u1", "admin@example.com", types.RoleAdmin, nil, nil, riskTeam)
		gt.Bool(t, p.IsAdmin).True()
		gt.Bool(t, p.IsRiskTeam).False()
	})

	t.Run("risk department name sets IsRiskTeam", func(t *testing.T) {
		p := auth.NewPermissions("u1", "risk@example.com", types.RoleUser,
			[]types.DepartmentID{"d-risk"}, []string{"Risk"}, riskTeam)
		gt.Bool(t, p.IsAdmin).False()
		gt.Bool(t, p.IsRiskTeam).True()
	})

	t.Run("risk team matching is case-insensitive", func(t *testing.T) {
		p := auth.NewPermissions("u1", "risk@example.com", types.RoleUser,
			[]types.DepartmentID{"d-risk"}, []string{"risk management"}, riskTeam)
		gt.Bool(t, p.IsRiskTeam).True()
	})

	t.Run("empty role normalizes to user", func(t *testing.T) {
		p := auth.NewPermissions("u1", "new@example.com", "", nil, nil, riskTeam)
		gt.Value(t, p.Role).Equal(types.RoleUser)
		gt.Bool(t, p.IsAdmin).False()
	})

	t.Run("manager role does not grant admin", func(t *testing.T) {
		p := auth.NewPermissions("u1", "mgr@example.com", types.RoleManager, nil, nil, riskTeam)
		gt.Bool(t, p.IsAdmin).False()
	})
}

func TestPermissions_NilDeniesEverything(t *testing.T) {
	var p *auth.Permissions

	for _, dept := range []types.DepartmentID{"", "d1", "anything"} {
		gt.Bool(t, p.CanViewRisk(dept)).False()
		gt.Bool(t, p.CanEditRisk(dept)).False()
		gt.Bool(t, p.CanManageControls(dept)).False()
	}
	gt.Bool(t, p.CanViewEvidence()).False()
}

func TestPermissions_AdminBypass(t *testing.T) {
	p := auth.NewPermissions("u1", "admin@example.com", types.RoleAdmin, nil, nil, auth.DefaultRiskTeamNames())

	for _, dept := range []types.DepartmentID{"", "d1", "d2"} {
		gt.Bool(t, p.CanViewRisk(dept)).True()
		gt.Bool(t, p.CanEditRisk(dept)).True()
		gt.Bool(t, p.CanManageControls(dept)).True()
	}
	gt.Bool(t, p.CanViewEvidence()).True()
}

func TestPermissions_RiskTeam(t *testing.T) {
	p := auth.NewPermissions("u1", "risk@example.com", types.RoleUser,
		[]types.DepartmentID{"d-risk"}, []string{"Risk"}, auth.DefaultRiskTeamNames())

	t.Run("views and edits all departments", func(t *testing.T) {
		gt.Bool(t, p.CanViewRisk("d-other")).True()
		gt.Bool(t, p.CanEditRisk("d-other")).True()
		gt.Bool(t, p.CanViewEvidence()).True()
	})

	t.Run("manages controls only for assigned departments", func(t *testing.T) {
		gt.Bool(t, p.CanManageControls("d-risk")).True()
		gt.Bool(t, p.CanManageControls("d-other")).False()
	})
}

func TestPermissions_DepartmentUser(t *testing.T) {
	p := auth.NewPermissions("u1", "user@example.com", types.RoleUser,
		[]types.DepartmentID{"D1"}, []string{"Finance"}, auth.DefaultRiskTeamNames())

	t.Run("views only own department", func(t *testing.T) {
		gt.Bool(t, p.CanViewRisk("D1")).True()
		gt.Bool(t, p.CanViewRisk("D2")).False()
	})

	t.Run("cannot edit even own department risks", func(t *testing.T) {
		gt.Bool(t, p.CanEditRisk("D1")).False()
		gt.Bool(t, p.CanEditRisk("D2")).False()
	})

	t.Run("manages controls only for own department", func(t *testing.T) {
		gt.Bool(t, p.CanManageControls("D1")).True()
		gt.Bool(t, p.CanManageControls("D2")).False()
	})

	t.Run("cannot view evidence", func(t *testing.T) {
		gt.Bool(t, p.CanViewEvidence()).False()
	})

	t.Run("unassigned risk is not visible", func(t *testing.T) {
		gt.Bool(t, p.CanViewRisk("")).False()
		gt.Bool(t, p.CanManageControls("")).False()
	})
}

func TestNewMinimalPermissions(t *testing.T) {
	p := auth.NewMinimalPermissions("u1", "new@example.com")

	gt.Value(t, p.Role).Equal(types.RoleUser)
	gt.Array(t, p.DepartmentIDs).Length(0)
	gt.Array(t, p.DepartmentNames).Length(0)
	gt.Bool(t, p.IsAdmin).False()
	gt.Bool(t, p.IsRiskTeam).False()

	// Degraded default is a valid snapshot, but grants nothing
	gt.Bool(t, p.CanViewRisk("d1")).False()
	gt.Bool(t, p.CanEditRisk("d1")).False()
	gt.Bool(t, p.CanManageControls("d1")).False()
	gt.Bool(t, p.CanViewEvidence()).False()
}

func TestFilterVisibleRisks(t *testing.T) {
	risks := []*model.Risk{
		{ID: "r1", Title: "Ledger mismatch", DepartmentID: "Finance-id"},
		{ID: "r2", Title: "Server room flooding", DepartmentID: "Ops-id"},
		{ID: "r3", Title: "Untriaged report", DepartmentID: ""},
		{ID: "r4", Title: "Vendor invoice fraud", DepartmentID: "Finance-id"},
	}

	t.Run("nil permissions yields empty slice", func(t *testing.T) {
		got := auth.FilterVisibleRisks(risks, nil)
		gt.Array(t, got).Length(0)
	})

	t.Run("department user sees own department, order preserved", func(t *testing.T) {
		p := auth.NewPermissions("u1", "fin@example.com", types.RoleUser,
			[]types.DepartmentID{"Finance-id"}, []string{"Finance"}, auth.DefaultRiskTeamNames())

		got := auth.FilterVisibleRisks(risks, p)
		gt.Array(t, got).Length(2)
		gt.Value(t, got[0].ID).Equal(types.RiskID("r1"))
		gt.Value(t, got[1].ID).Equal(types.RiskID("r4"))
	})

	t.Run("unassigned risk hidden from department user", func(t *testing.T) {
		p := auth.NewPermissions("u1", "fin@example.com", types.RoleUser,
			[]types.DepartmentID{"Finance-id"}, []string{"Finance"}, auth.DefaultRiskTeamNames())

		for _, risk := range auth.FilterVisibleRisks(risks, p) {
			gt.Value(t, risk.DepartmentID).Equal(types.DepartmentID("Finance-id"))
		}
	})

	t.Run("admin sees everything including unassigned", func(t *testing.T) {
		p := auth.NewPermissions("u1", "admin@example.com", types.RoleAdmin, nil, nil, auth.DefaultRiskTeamNames())
		got := auth.FilterVisibleRisks(risks, p)
		gt.Array(t, got).Length(4)
	})

	t.Run("idempotent", func(t *testing.T) {
		p := auth.NewPermissions("u1", "fin@example.com", types.RoleUser,
			[]types.DepartmentID{"Finance-id"}, []string{"Finance"}, auth.DefaultRiskTeamNames())

		once := auth.FilterVisibleRisks(risks, p)
		twice := auth.FilterVisibleRisks(once, p)
		gt.Array(t, twice).Length(len(once))
		for i := range once {
			gt.Value(t, twice[i].ID).Equal(once[i].ID)
		}
	})
}
