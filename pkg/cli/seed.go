package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/cli/config"
	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// standardDepartments are seeded when no config file supplies its own list
var standardDepartments = []string{
	"IT Security",
	"Finance",
	"Operations",
	"Human Resources",
	"Marketing",
	"Risk",
	"Legal",
	"Compliance",
}

func cmdSeed() *cli.Command {
	var appCfg config.App
	var repoCfg config.Repository

	var flags []cli.Flag
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Create the initial set of departments",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			appConfig, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			names := appConfig.DepartmentNames()
			if len(names) == 0 {
				names = standardDepartments
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			existing, err := repo.Department().List(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to list departments")
			}
			present := make(map[string]bool, len(existing))
			for _, dept := range existing {
				present[dept.Name] = true
			}

			var created int
			for _, name := range names {
				if present[name] {
					logger.Info("Department already exists, skipping", "name", name)
					continue
				}
				dept, err := repo.Department().Create(ctx, &model.Department{Name: name})
				if err != nil {
					return goerr.Wrap(err, "failed to create department", goerr.V("name", name))
				}
				logger.Info("Department created", "name", dept.Name, "id", dept.ID)
				created++
			}

			logger.Info("Seed completed", "created", created, "skipped", len(names)-created)
			return nil
		},
	}
}
