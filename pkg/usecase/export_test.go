package usecase

import "context"

// DecodeIDToken exposes ID token verification for tests
func (uc *AuthUseCase) DecodeIDToken(ctx context.Context, idToken string) (sub, email string, err error) {
	claims, err := uc.decodeIDToken(ctx, idToken)
	if err != nil {
		return "", "", err
	}
	return claims.Sub, claims.Email, nil
}
