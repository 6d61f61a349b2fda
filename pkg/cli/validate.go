package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var appCfg config.App

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the application configuration file",
		Flags:   appCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if appCfg.Path() == "" {
				return goerr.New("config file path is required (--config)")
			}

			appConfig, err := config.LoadAppConfiguration(appCfg.Path())
			if err != nil {
				color.Red("NG  %s", appCfg.Path())
				return goerr.Wrap(err, "configuration validation failed")
			}

			color.Green("OK  %s", appCfg.Path())

			riskTeams := appConfig.ToRiskTeamNames()
			fmt.Printf("  risk team names: %v\n", []string(riskTeams))
			fmt.Printf("  likelihood levels: %d\n", len(appConfig.Likelihood))
			fmt.Printf("  impact levels: %d\n", len(appConfig.Impact))
			fmt.Printf("  seed departments: %d\n", len(appConfig.Departments))

			return nil
		},
	}
}
