package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/riskledger/riskledger/pkg/cli/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestLoadAppConfiguration(t *testing.T) {
	path := writeConfigFile(t, `
risk_team_names = ["Risk", "Risk Office"]

[[likelihood]]
score = 1
name = "Rare"
description = "Not expected within five years"

[[likelihood]]
score = 5
name = "Almost Certain"

[[impact]]
score = 3
name = "Moderate"

[[department]]
name = "IT Security"

[[department]]
name = "Finance"
`)

	cfg, err := config.LoadAppConfiguration(path)
	gt.NoError(t, err).Required()

	gt.Array(t, cfg.RiskTeamNames).Equal([]string{"Risk", "Risk Office"})
	gt.Array(t, cfg.Likelihood).Length(2)
	gt.Array(t, cfg.Impact).Length(1)
	gt.Array(t, cfg.DepartmentNames()).Equal([]string{"IT Security", "Finance"})

	names := cfg.ToRiskTeamNames()
	gt.Bool(t, names.Match("risk office")).True()
	gt.Bool(t, names.Match("Finance")).False()
}

func TestLoadAppConfigurationDefaults(t *testing.T) {
	path := writeConfigFile(t, "")

	cfg, err := config.LoadAppConfiguration(path)
	gt.NoError(t, err).Required()

	// Empty config falls back to the default Risk-team name set
	names := cfg.ToRiskTeamNames()
	gt.Bool(t, names.Match("Risk Team")).True()
	gt.Array(t, cfg.DepartmentNames()).Length(0)
}

func TestLoadAppConfigurationInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "score out of range",
			content: `
[[likelihood]]
score = 6
name = "Impossible"
`,
		},
		{
			name: "duplicate score",
			content: `
[[impact]]
score = 2
name = "Minor"

[[impact]]
score = 2
name = "Also Minor"
`,
		},
		{
			name: "unnamed level",
			content: `
[[likelihood]]
score = 3
`,
		},
		{
			name: "duplicate department",
			content: `
[[department]]
name = "Finance"

[[department]]
name = "Finance"
`,
		},
		{
			name:    "broken TOML",
			content: `risk_team_names = [`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			_, err := config.LoadAppConfiguration(path)
			gt.Error(t, err)
		})
	}
}

func TestLoadAppConfigurationMissingFile(t *testing.T) {
	_, err := config.LoadAppConfiguration(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err)
}
