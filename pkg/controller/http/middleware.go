package http

import (
	"net/http"

	"github.com/riskledger/riskledger/pkg/domain/model/auth"
	"github.com/riskledger/riskledger/pkg/usecase"
	"github.com/riskledger/riskledger/pkg/utils/errutil"
)

// authMiddleware validates authentication for protected requests
func authMiddleware(authUC AuthUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// For NoAuthn mode or when authUC is not configured, always use anonymous user
			if authUC == nil || authUC.IsNoAuthn() {
				var token *auth.Token
				if authUC != nil {
					var err error
					token, err = authUC.ValidateToken(r.Context(), "", "")
					if err != nil {
						http.Error(w, "Authentication required", http.StatusUnauthorized)
						return
					}
				} else {
					token = auth.NewAnonymousToken()
				}
				ctx := auth.ContextWithToken(r.Context(), token)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// Get tokens from cookies
			tokenIDCookie, err := r.Cookie("token_id")
			if err != nil {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			tokenSecretCookie, err := r.Cookie("token_secret")
			if err != nil {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			tokenID := auth.TokenID(tokenIDCookie.Value)
			tokenSecret := auth.TokenSecret(tokenSecretCookie.Value)

			token, err := authUC.ValidateToken(r.Context(), tokenID, tokenSecret)
			if err != nil {
				http.Error(w, "Invalid authentication token", http.StatusUnauthorized)
				return
			}

			ctx := auth.ContextWithToken(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// permissionsMiddleware loads the permission snapshot for the authenticated
// identity. A load failure is not a request failure: the request proceeds
// with no snapshot, and the evaluator denies everything downstream.
func permissionsMiddleware(permUC *usecase.PermissionUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := auth.TokenFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			perms, err := permUC.LoadPermissions(r.Context(), token.Sub, token.Email)
			if err != nil {
				errutil.Handle(r.Context(), err, "permission load failed, treating as unknown")
				perms = nil
			}

			ctx := auth.ContextWithPermissions(r.Context(), perms)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
