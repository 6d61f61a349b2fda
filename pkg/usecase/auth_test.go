package usecase_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/gt"
	"github.com/riskledger/riskledger/pkg/domain/model/auth"
	"github.com/riskledger/riskledger/pkg/repository/memory"
	"github.com/riskledger/riskledger/pkg/usecase"
)

func TestAuthUseCase_ValidateToken(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.NewAuthUseCase(repo, "https://issuer.example.com", "client-id", "client-secret", "https://app.example.com/api/auth/callback")

	token := auth.NewToken("user-1", "alice@example.com", "Alice")
	gt.NoError(t, repo.PutToken(ctx, token))

	t.Run("valid token passes", func(t *testing.T) {
		validated, err := uc.ValidateToken(ctx, token.ID, token.Secret)
		gt.NoError(t, err).Required()
		gt.Value(t, validated.Sub).Equal(token.Sub)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		_, err := uc.ValidateToken(ctx, token.ID, "wrong-secret")
		gt.Error(t, err)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		_, err := uc.ValidateToken(ctx, "no-such-id", "secret")
		gt.Error(t, err)
	})

	t.Run("cached token survives repository deletion until logout", func(t *testing.T) {
		// The first validation cached the token; a direct repository delete
		// is not seen until the cache entry is dropped
		gt.NoError(t, repo.DeleteToken(ctx, token.ID))

		_, err := uc.ValidateToken(ctx, token.ID, token.Secret)
		gt.NoError(t, err)

		gt.Error(t, uc.Logout(ctx, token.ID))

		_, err = uc.ValidateToken(ctx, token.ID, token.Secret)
		gt.Error(t, err)
	})

	t.Run("IsNoAuthn returns false", func(t *testing.T) {
		gt.Bool(t, uc.IsNoAuthn()).False()
	})
}

// newOIDCProvider serves a discovery document and JWKS for one signing key
func newOIDCProvider(t *testing.T) (*httptest.Server, jwk.Key) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	gt.NoError(t, err).Required()

	key, err := jwk.FromRaw(priv)
	gt.NoError(t, err).Required()
	gt.NoError(t, key.Set(jwk.KeyIDKey, "test-key"))
	gt.NoError(t, key.Set(jwk.AlgorithmKey, jwa.RS256))

	pub, err := key.PublicKey()
	gt.NoError(t, err).Required()
	set := jwk.NewSet()
	gt.NoError(t, set.AddKey(pub))

	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"issuer":                 srv.URL,
			"authorization_endpoint": srv.URL + "/authorize",
			"token_endpoint":         srv.URL + "/token",
			"jwks_uri":               srv.URL + "/jwks",
		})
	})
	mux.HandleFunc("/jwks", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(set)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, key
}

func signIDToken(t *testing.T, key jwk.Key, issuer, audience string) string {
	tok, err := jwt.NewBuilder().
		Issuer(issuer).
		Subject("user-1").
		Audience([]string{audience}).
		IssuedAt(time.Now()).
		Expiration(time.Now().Add(time.Hour)).
		Claim("email", "alice@example.com").
		Claim("name", "Alice").
		Build()
	gt.NoError(t, err).Required()

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.RS256, key))
	gt.NoError(t, err).Required()

	return string(signed)
}

func TestAuthUseCase_DecodeIDToken(t *testing.T) {
	ctx := context.Background()
	srv, key := newOIDCProvider(t)
	repo := memory.New()
	uc := usecase.NewAuthUseCase(repo, srv.URL, "client-id", "secret", "https://app.example.com/api/auth/callback")

	t.Run("token from the configured issuer is accepted", func(t *testing.T) {
		sub, email, err := uc.DecodeIDToken(ctx, signIDToken(t, key, srv.URL, "client-id"))
		gt.NoError(t, err).Required()
		gt.Value(t, sub).Equal("user-1")
		gt.Value(t, email).Equal("alice@example.com")
	})

	t.Run("token minted by another issuer on the same keys is rejected", func(t *testing.T) {
		_, _, err := uc.DecodeIDToken(ctx, signIDToken(t, key, "https://other-tenant.example.com", "client-id"))
		gt.Error(t, err)
	})

	t.Run("token for another audience is rejected", func(t *testing.T) {
		_, _, err := uc.DecodeIDToken(ctx, signIDToken(t, key, srv.URL, "other-client"))
		gt.Error(t, err)
	})
}

func TestAuthUseCase_GetAuthURL(t *testing.T) {
	repo := memory.New()
	uc := usecase.NewAuthUseCase(repo, "https://issuer.example.com/", "client-id", "secret", "https://app.example.com/api/auth/callback")

	url := uc.GetAuthURL("xyz-state")
	gt.Value(t, url[:40]).Equal("https://issuer.example.com/authorize?cli")
	gt.Bool(t, len(url) > 40).True()
}
