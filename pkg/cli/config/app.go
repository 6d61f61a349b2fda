package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/riskledger/riskledger/pkg/domain/model/auth"
	"github.com/urfave/cli/v3"
)

// App holds the CLI flag pointing at the TOML application config file
type App struct {
	path string
}

// Flags returns CLI flags for application configuration
func (a *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to TOML application config file",
			Sources:     cli.EnvVars("RISKLEDGER_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Path returns the configured config file path
func (a *App) Path() string {
	return a.path
}

// Configure loads and validates the application config. Without a config
// file every setting falls back to its default.
func (a *App) Configure() (*AppConfig, error) {
	if a.path == "" {
		return &AppConfig{}, nil
	}
	return LoadAppConfiguration(a.path)
}

// AppConfig represents the application configuration
type AppConfig struct {
	RiskTeamNames []string     `toml:"risk_team_names"`
	Likelihood    []ScaleLevel `toml:"likelihood"`
	Impact        []ScaleLevel `toml:"impact"`
	Departments   []Department `toml:"department"`
}

// ScaleLevel names one step of the likelihood or impact scale
type ScaleLevel struct {
	Score       int    `toml:"score"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// Validate checks if the ScaleLevel is valid
func (s *ScaleLevel) Validate() error {
	if s.Score < 1 || s.Score > 5 {
		return goerr.New("scale score must be between 1 and 5", goerr.V("score", s.Score), goerr.V("name", s.Name))
	}
	if s.Name == "" {
		return goerr.New("scale level name is required", goerr.V("score", s.Score))
	}
	return nil
}

// Department represents a department to seed at startup
type Department struct {
	Name string `toml:"name"`
}

// Validate checks if the Department is valid
func (d *Department) Validate() error {
	if d.Name == "" {
		return goerr.New("department name is required")
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	validateScale := func(levels []ScaleLevel, kind string) error {
		scores := make(map[int]bool)
		for i := range levels {
			if err := levels[i].Validate(); err != nil {
				return goerr.Wrap(err, "invalid "+kind+" level")
			}
			if scores[levels[i].Score] {
				return goerr.New("duplicate "+kind+" score", goerr.V("score", levels[i].Score))
			}
			scores[levels[i].Score] = true
		}
		return nil
	}

	if err := validateScale(a.Likelihood, "likelihood"); err != nil {
		return err
	}
	if err := validateScale(a.Impact, "impact"); err != nil {
		return err
	}

	names := make(map[string]bool)
	for i := range a.Departments {
		if err := a.Departments[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid department")
		}
		if names[a.Departments[i].Name] {
			return goerr.New("duplicate department name", goerr.V("name", a.Departments[i].Name))
		}
		names[a.Departments[i].Name] = true
	}

	return nil
}

// ToRiskTeamNames converts the configured names to the domain set, falling
// back to the defaults when none are configured
func (a *AppConfig) ToRiskTeamNames() auth.RiskTeamNames {
	if len(a.RiskTeamNames) == 0 {
		return auth.DefaultRiskTeamNames()
	}
	return auth.RiskTeamNames(a.RiskTeamNames)
}

// DepartmentNames returns the configured seed department names
func (a *AppConfig) DepartmentNames() []string {
	names := make([]string, 0, len(a.Departments))
	for _, d := range a.Departments {
		names = append(names, d.Name)
	}
	return names
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}

	return &config, nil
}
