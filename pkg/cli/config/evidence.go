package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/service/evidence"
	"github.com/riskledger/riskledger/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Evidence holds CLI flags for the evidence object store
type Evidence struct {
	bucket string
	prefix string
}

// Flags returns CLI flags for evidence storage configuration
func (e *Evidence) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "evidence-bucket",
			Usage:       "Cloud Storage bucket for control evidence (evidence features disabled when empty)",
			Sources:     cli.EnvVars("RISKLEDGER_EVIDENCE_BUCKET"),
			Destination: &e.bucket,
		},
		&cli.StringFlag{
			Name:        "evidence-prefix",
			Usage:       "Object key prefix within the evidence bucket",
			Sources:     cli.EnvVars("RISKLEDGER_EVIDENCE_PREFIX"),
			Destination: &e.prefix,
		},
	}
}

// Bucket returns the configured bucket name
func (e *Evidence) Bucket() string {
	return e.bucket
}

// Configure builds the evidence store, or returns nil when no bucket is
// configured. The caller is responsible for calling Close().
func (e *Evidence) Configure(ctx context.Context) (*evidence.Service, error) {
	if e.bucket == "" {
		logging.Default().Info("Evidence bucket not configured, evidence features disabled")
		return nil, nil
	}

	var opts []evidence.Option
	if e.prefix != "" {
		opts = append(opts, evidence.WithObjectPrefix(e.prefix))
	}

	svc, err := evidence.New(ctx, e.bucket, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize evidence store", goerr.V("bucket", e.bucket))
	}

	logging.Default().Info("Evidence store enabled", "bucket", e.bucket, "prefix", e.prefix)
	return svc, nil
}
