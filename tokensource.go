package jwtx

import (
	"golang.org/x/oauth2"
)

const bearerTokenType = "Bearer"

// TokenSource returns an oauth2.TokenSource minting session tokens for the
// given identity. Tokens are reused until they expire, so it plugs directly
// into oauth2.NewClient for outbound calls.
func (i *Issuer) TokenSource(email, role string) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &issuerSource{issuer: i, email: email, role: role})
}

type issuerSource struct {
	issuer *Issuer
	email  string
	role   string
}

// Token implements oauth2.TokenSource.
func (s *issuerSource) Token() (*oauth2.Token, error) {
	token, claims, err := s.issuer.issue(s.email, s.role)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken: token,
		TokenType:   bearerTokenType,
		Expiry:      claims.ExpiresAt(),
	}, nil
}
