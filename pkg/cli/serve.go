package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/riskledger/riskledger/pkg/cli/config"
	httpctrl "github.com/riskledger/riskledger/pkg/controller/http"
	"github.com/riskledger/riskledger/pkg/usecase"
	"github.com/riskledger/riskledger/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var noAuthUID string
	var appCfg config.App
	var repoCfg config.Repository
	var oidcCfg config.OIDC
	var evidenceCfg config.Evidence

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RISKLEDGER_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and run as the specified user ID (development only). Example: --no-auth=dev-user",
			Category:    "Authentication",
			Sources:     cli.EnvVars("RISKLEDGER_NO_AUTH"),
			Destination: &noAuthUID,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, oidcCfg.Flags()...)
	flags = append(flags, evidenceCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			appConfig, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			if noAuthUID != "" {
				oidcCfg.SetNoAuthUID(noAuthUID)
			}

			authUC, err := oidcCfg.Configure(repo)
			if err != nil {
				return goerr.Wrap(err, "failed to configure authentication")
			}

			if oidcCfg.IsNoAuthMode() {
				logging.Default().Warn("Running in no-auth mode (development only)", "user_id", noAuthUID)
			} else if oidcCfg.IsConfigured() {
				logging.Default().Info("OIDC authentication enabled")
			}

			ucOpts := []usecase.Option{
				usecase.WithRiskTeamNames(appConfig.ToRiskTeamNames()),
			}
			if authUC != nil {
				ucOpts = append(ucOpts, usecase.WithAuth(authUC))
			}

			evidenceSvc, err := evidenceCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure evidence store")
			}
			if evidenceSvc != nil {
				defer func() {
					if err := evidenceSvc.Close(); err != nil {
						logging.Default().Error("failed to close evidence store", "error", err.Error())
					}
				}()
				ucOpts = append(ucOpts, usecase.WithEvidence(evidenceSvc))
			}

			uc := usecase.New(repo, ucOpts...)

			httpHandler, err := httpctrl.New(uc)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
