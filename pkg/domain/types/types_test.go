package types_test

import (
	"testing"

	"github.com/riskledger/riskledger/pkg/domain/types"
)

func TestRole_IsValid(t *testing.T) {
	tests := []struct {
		name string
		role types.Role
		want bool
	}{
		{"admin", types.RoleAdmin, true},
		{"manager", types.RoleManager, true},
		{"user", types.RoleUser, true},
		{"read_only", types.RoleReadOnly, true},
		{"empty", types.Role(""), false},
		{"uppercase", types.Role("Admin"), false},
		{"unknown", types.Role("superuser"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.IsValid(); got != tt.want {
				t.Errorf("Role.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRole_Normalize(t *testing.T) {
	if got := types.Role("").Normalize(); got != types.RoleUser {
		t.Errorf("empty role normalized to %v, want %v", got, types.RoleUser)
	}
	if got := types.RoleAdmin.Normalize(); got != types.RoleAdmin {
		t.Errorf("admin role normalized to %v, want %v", got, types.RoleAdmin)
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.Role
		wantErr bool
	}{
		{"admin", "admin", types.RoleAdmin, false},
		{"read_only", "read_only", types.RoleReadOnly, false},
		{"empty", "", "", true},
		{"typo", "adminn", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseRole(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRole() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRole() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLikelihood_Validate(t *testing.T) {
	tests := []struct {
		name    string
		l       types.Likelihood
		wantErr bool
	}{
		{"minimum", 1, false},
		{"maximum", 5, false},
		{"zero", 0, true},
		{"over", 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.l.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Likelihood.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestImpact_Validate(t *testing.T) {
	tests := []struct {
		name    string
		i       types.Impact
		wantErr bool
	}{
		{"minimum", 1, false},
		{"maximum", 5, false},
		{"zero", 0, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.i.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Impact.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRiskStatus_Normalize(t *testing.T) {
	if got := types.RiskStatus("").Normalize(); got != types.RiskStatusOpen {
		t.Errorf("empty status normalized to %v, want %v", got, types.RiskStatusOpen)
	}
	if got := types.RiskStatusClosed.Normalize(); got != types.RiskStatusClosed {
		t.Errorf("closed status normalized to %v, want %v", got, types.RiskStatusClosed)
	}
}

func TestDepartmentID_Validate(t *testing.T) {
	if err := types.DepartmentID("").Validate(); err == nil {
		t.Error("expected error for empty department ID")
	}
	if err := types.NewDepartmentID().Validate(); err != nil {
		t.Errorf("unexpected error for generated department ID: %v", err)
	}
}

func TestNewIDConstructors(t *testing.T) {
	if err := types.NewUserID().Validate(); err != nil {
		t.Errorf("unexpected error for generated user ID: %v", err)
	}
	if err := types.NewRiskID().Validate(); err != nil {
		t.Errorf("unexpected error for generated risk ID: %v", err)
	}
	if err := types.NewControlID().Validate(); err != nil {
		t.Errorf("unexpected error for generated control ID: %v", err)
	}
	if types.NewUserID() == types.NewUserID() {
		t.Error("generated user IDs should be unique")
	}
}
