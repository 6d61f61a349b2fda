package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/riskledger/riskledger/pkg/cli/config"
	"github.com/riskledger/riskledger/pkg/repository/memory"
)

func TestOIDCNoAuthMode(t *testing.T) {
	var oidc config.OIDC

	gt.Bool(t, oidc.IsNoAuthMode()).False()

	oidc.SetNoAuthUID("dev-user")
	gt.Bool(t, oidc.IsNoAuthMode()).True()

	authUC, err := oidc.Configure(memory.New())
	gt.NoError(t, err).Required()
	gt.Value(t, authUC).NotNil()
	gt.Bool(t, authUC.IsNoAuthn()).True()
}

func TestOIDCUnconfigured(t *testing.T) {
	var oidc config.OIDC

	gt.Bool(t, oidc.IsConfigured()).False()

	// Without any OIDC settings authentication is simply disabled
	authUC, err := oidc.Configure(memory.New())
	gt.NoError(t, err)
	gt.Value(t, authUC).Nil()
}

func TestOIDCIncompleteConfiguration(t *testing.T) {
	oidc := config.NewOIDCForTest("https://issuer.example.com", "", "", "", "")

	_, err := oidc.Configure(memory.New())
	gt.Error(t, err)
}

func TestOIDCMissingCallbackURL(t *testing.T) {
	oidc := config.NewOIDCForTest("https://issuer.example.com", "client-id", "client-secret", "", "")

	gt.Bool(t, oidc.IsConfigured()).True()

	_, err := oidc.Configure(memory.New())
	gt.Error(t, err)
}

func TestOIDCComplete(t *testing.T) {
	oidc := config.NewOIDCForTest(
		"https://issuer.example.com", "client-id", "client-secret",
		"https://app.example.com/api/auth/callback", "")

	authUC, err := oidc.Configure(memory.New())
	gt.NoError(t, err).Required()
	gt.Value(t, authUC).NotNil()
	gt.Bool(t, authUC.IsNoAuthn()).False()
}
