package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/domain/types"
)

const tokenLifetime = 7 * 24 * time.Hour

// TokenID identifies a session token
type TokenID string

// Validate checks if the TokenID is valid
func (t TokenID) Validate() error {
	if t == "" {
		return goerr.New("token ID cannot be empty")
	}
	return nil
}

// String returns the string representation of TokenID
func (t TokenID) String() string {
	return string(t)
}

// TokenSecret is the secret half of a session token
type TokenSecret string

// Validate checks if the TokenSecret is valid
func (t TokenSecret) Validate() error {
	if t == "" {
		return goerr.New("token secret cannot be empty")
	}
	return nil
}

// String returns the string representation of TokenSecret
func (t TokenSecret) String() string {
	return string(t)
}

// Token is a persisted session for an authenticated identity
type Token struct {
	ID        TokenID      `firestore:"id" json:"id"`
	Secret    TokenSecret  `firestore:"secret" json:"secret" masq:"secret"`
	Sub       types.UserID `firestore:"sub" json:"sub"`
	Email     string       `firestore:"email" json:"email"`
	Name      string       `firestore:"name" json:"name"`
	CreatedAt time.Time    `firestore:"created_at" json:"created_at"`
	ExpiresAt time.Time    `firestore:"expires_at" json:"expires_at"`
}

// NewToken creates a new session token for the given identity
func NewToken(sub types.UserID, email, name string) *Token {
	now := time.Now().UTC()
	return &Token{
		ID:        TokenID(uuid.New().String()),
		Secret:    TokenSecret(uuid.New().String()),
		Sub:       sub,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		ExpiresAt: now.Add(tokenLifetime),
	}
}

// NewAnonymousToken creates a token for no-auth development mode
func NewAnonymousToken() *Token {
	return NewToken("anonymous", "anonymous@localhost", "Anonymous")
}

// Validate checks if the token has all required fields
func (t *Token) Validate() error {
	if err := t.ID.Validate(); err != nil {
		return err
	}
	if err := t.Secret.Validate(); err != nil {
		return err
	}
	if err := t.Sub.Validate(); err != nil {
		return goerr.Wrap(err, "token subject is required")
	}
	return nil
}

// IsExpired checks if the token has passed its expiry
func (t *Token) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
