package jwtx

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
)

const (
	signingAlgorithm = jwa.HS256
	tokenType        = "JWT"
)

// Issuer mints HS256 session tokens for a single audience.
// An Issuer is immutable and safe for concurrent use.
type Issuer struct {
	key      jwk.Key
	audience string
	now      func() time.Time
}

// NewIssuer builds an issuer from the given configuration. Errors are
// configuration errors and should stop startup.
func NewIssuer(cfg Config) (*Issuer, error) {
	cfg, err := cfg.prepare()
	if err != nil {
		return nil, err
	}
	key, err := newSigningKey(cfg.Secret)
	if err != nil {
		return nil, err
	}
	return &Issuer{
		key:      key,
		audience: cfg.Audience,
		now:      cfg.Now,
	}, nil
}

// Issue returns a signed token for the given identity. Email and role are
// copied as-is; validating them is the caller's job.
func (i *Issuer) Issue(email, role string) (string, error) {
	token, _, err := i.issue(email, role)
	return token, err
}

func (i *Issuer) issue(email, role string) (string, Claims, error) {
	issuedAt := i.now()
	claims := Claims{
		Audience:   i.audience,
		Expiration: NewNumericDate(issuedAt.Add(TokenTTL)),
		UserEmail:  email,
		UserRole:   role,
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", Claims{}, newError(ErrCodeSigningFailed, fmt.Errorf("encode claims: %w", err))
	}

	headers := jws.NewHeaders()
	if err := headers.Set(jws.TypeKey, tokenType); err != nil {
		return "", Claims{}, newError(ErrCodeSigningFailed, fmt.Errorf("set header: %w", err))
	}
	signed, err := jws.Sign(payload, jws.WithKey(signingAlgorithm, i.key, jws.WithProtectedHeaders(headers)))
	if err != nil {
		return "", Claims{}, newError(ErrCodeSigningFailed, err)
	}
	return string(signed), claims, nil
}

func newSigningKey(secret []byte) (jwk.Key, error) {
	key, err := jwk.FromRaw(secret)
	if err != nil {
		return nil, newError(ErrCodeInvalidConfig, fmt.Errorf("build hmac key: %w", err))
	}
	return key, nil
}
