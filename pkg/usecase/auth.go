package usecase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/domain/interfaces"
	"github.com/riskledger/riskledger/pkg/domain/model/auth"
	"github.com/riskledger/riskledger/pkg/domain/types"
	"github.com/riskledger/riskledger/pkg/utils/safe"
)

// AuthUseCaseInterface abstracts session authentication so the HTTP layer
// works identically with real OIDC and the no-auth development mode
type AuthUseCaseInterface interface {
	GetAuthURL(state string) string
	HandleCallback(ctx context.Context, code string) (*auth.Token, error)
	ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error)
	Logout(ctx context.Context, tokenID auth.TokenID) error
	IsNoAuthn() bool
}

// AuthUseCase authenticates users against an OIDC provider and manages the
// resulting session tokens
type AuthUseCase struct {
	repo         interfaces.Repository
	users        *UserUseCase
	issuer       string
	clientID     string
	clientSecret string
	callbackURL  string
	cache        *authCache
}

func NewAuthUseCase(repo interfaces.Repository, issuer, clientID, clientSecret, callbackURL string) *AuthUseCase {
	return &AuthUseCase{
		repo:         repo,
		users:        NewUserUseCase(repo),
		issuer:       strings.TrimSuffix(issuer, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		callbackURL:  callbackURL,
		cache:        newAuthCache(),
	}
}

// OpenIDConfiguration is the provider's discovery document
type OpenIDConfiguration struct {
	Issuer                string `json:"issuer"`
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	UserinfoEndpoint      string `json:"userinfo_endpoint"`
	JWKSURI               string `json:"jwks_uri"`
}

// IsNoAuthn returns false for regular AuthUseCase
func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}

// GetAuthURL returns the provider's authorization URL. The endpoint is
// derived from the issuer rather than discovery so this stays synchronous
// for redirect handlers; all standard providers serve it under /authorize.
func (uc *AuthUseCase) GetAuthURL(state string) string {
	params := url.Values{}
	params.Set("client_id", uc.clientID)
	params.Set("scope", "openid email profile")
	params.Set("redirect_uri", uc.callbackURL)
	params.Set("response_type", "code")
	params.Set("state", state)

	return uc.issuer + "/authorize?" + params.Encode()
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	IDToken          string `json:"id_token"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type idTokenClaims struct {
	Sub   string
	Email string
	Name  string
}

// HandleCallback processes the OAuth callback: exchanges the code, verifies
// the ID token, provisions the profile row on first login, and issues a
// session token.
func (uc *AuthUseCase) HandleCallback(ctx context.Context, code string) (*auth.Token, error) {
	tokenResp, err := uc.exchangeCodeForToken(ctx, code)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to exchange code for token")
	}

	if tokenResp.Error != "" {
		return nil, goerr.New("oidc token error",
			goerr.V("error", tokenResp.Error), goerr.V("description", tokenResp.ErrorDescription))
	}

	claims, err := uc.decodeIDToken(ctx, tokenResp.IDToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode ID token")
	}

	if _, err := uc.users.Provision(ctx, types.UserID(claims.Sub), claims.Email, claims.Name); err != nil {
		return nil, goerr.Wrap(err, "failed to provision user profile")
	}

	token := auth.NewToken(types.UserID(claims.Sub), claims.Email, claims.Name)
	if err := uc.repo.PutToken(ctx, token); err != nil {
		return nil, goerr.Wrap(err, "failed to store token")
	}

	return token, nil
}

// exchangeCodeForToken exchanges the authorization code at the provider's
// token endpoint
func (uc *AuthUseCase) exchangeCodeForToken(ctx context.Context, code string) (*tokenResponse, error) {
	config, err := uc.getOpenIDConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("client_id", uc.clientID)
	data.Set("client_secret", uc.clientSecret)
	data.Set("code", code)
	data.Set("redirect_uri", uc.callbackURL)

	encodedData := data.Encode()
	req, err := http.NewRequestWithContext(ctx, "POST", config.TokenEndpoint, strings.NewReader(encodedData))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.ContentLength = int64(len(encodedData))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to make token request")
	}
	defer safe.Close(ctx, resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body")
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, goerr.Wrap(err, "failed to parse token response")
	}

	return &tokenResp, nil
}

// getOpenIDConfiguration fetches the provider's discovery document
func (uc *AuthUseCase) getOpenIDConfiguration(ctx context.Context) (*OpenIDConfiguration, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", uc.issuer+"/.well-known/openid-configuration", nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch OpenID configuration")
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("failed to fetch OpenID configuration", goerr.V("status", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read OpenID configuration response")
	}

	var config OpenIDConfiguration
	if err := json.Unmarshal(body, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse OpenID configuration")
	}

	return &config, nil
}

// decodeIDToken verifies the ID token against the provider's published keys
func (uc *AuthUseCase) decodeIDToken(ctx context.Context, idToken string) (*idTokenClaims, error) {
	config, err := uc.getOpenIDConfiguration(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get OpenID configuration")
	}

	keySet, err := jwk.Fetch(ctx, config.JWKSURI)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch provider's public keys", goerr.V("jwks_uri", config.JWKSURI))
	}

	// Allow 10 seconds of clock skew to handle time synchronization differences
	token, err := jwt.Parse([]byte(idToken), jwt.WithKeySet(keySet), jwt.WithValidate(true), jwt.WithIssuer(uc.issuer), jwt.WithAudience(uc.clientID), jwt.WithAcceptableSkew(10*time.Second))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse or verify JWT token")
	}

	claims := &idTokenClaims{
		Sub: token.Subject(),
	}
	if claims.Sub == "" {
		return nil, goerr.New("sub claim not found in token")
	}

	if email, ok := token.Get("email"); ok {
		if s, ok := email.(string); ok {
			claims.Email = s
		}
	}
	if claims.Email == "" {
		return nil, goerr.New("email claim not found in token")
	}

	if name, ok := token.Get("name"); ok {
		if s, ok := name.(string); ok {
			claims.Name = s
		}
	}

	return claims, nil
}

// ValidateToken validates the token and returns user info
func (uc *AuthUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	return uc.validateTokenWithCache(ctx, tokenID, tokenSecret)
}

// Logout deletes the token
func (uc *AuthUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	uc.cache.remove(tokenID)
	return uc.repo.DeleteToken(ctx, tokenID)
}
