package config

// NewOIDCForTest creates an OIDC config for testing purposes
func NewOIDCForTest(issuer, clientID, clientSecret, callbackURL, noAuthUID string) *OIDC {
	return &OIDC{
		issuer:       issuer,
		clientID:     clientID,
		clientSecret: clientSecret,
		callbackURL:  callbackURL,
		noAuthUID:    noAuthUID,
	}
}
