package usecase

import (
	"context"

	"github.com/riskledger/riskledger/pkg/domain/interfaces"
	"github.com/riskledger/riskledger/pkg/domain/model/auth"
	"github.com/riskledger/riskledger/pkg/domain/types"
)

// NoAuthnUseCase provides authentication using a specified user (for development/testing)
type NoAuthnUseCase struct {
	repo  interfaces.Repository
	users *UserUseCase
	sub   types.UserID
	email string
	name  string
}

// NewNoAuthnUseCase creates a new NoAuthnUseCase instance with specified user info
func NewNoAuthnUseCase(repo interfaces.Repository, sub types.UserID, email, name string) *NoAuthnUseCase {
	return &NoAuthnUseCase{
		repo:  repo,
		users: NewUserUseCase(repo),
		sub:   sub,
		email: email,
		name:  name,
	}
}

// GetAuthURL returns a dummy URL (should not be called in no-auth mode)
func (uc *NoAuthnUseCase) GetAuthURL(state string) string {
	return "/"
}

// HandleCallback returns a token for the configured user, provisioning the
// profile row like a real first login would
func (uc *NoAuthnUseCase) HandleCallback(ctx context.Context, code string) (*auth.Token, error) {
	if _, err := uc.users.Provision(ctx, uc.sub, uc.email, uc.name); err != nil {
		return nil, err
	}
	return auth.NewToken(uc.sub, uc.email, uc.name), nil
}

// ValidateToken always returns a token for the specified user
func (uc *NoAuthnUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	return auth.NewToken(uc.sub, uc.email, uc.name), nil
}

// Logout does nothing in no-auth mode
func (uc *NoAuthnUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	return nil
}

// IsNoAuthn returns true for NoAuthnUseCase
func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}
