package jwtx

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
)

var (
	segmentEncoding = base64.RawURLEncoding.Strict()
	segmentNames    = [3]string{"header", "payload", "signature"}
)

// Verifier validates tokens minted by an Issuer sharing the same secret.
// Expiration and audience are always checked.
// A Verifier is immutable and safe for concurrent use.
type Verifier struct {
	key       jwk.Key
	audience  string
	clockSkew time.Duration
	now       func() time.Time
}

// NewVerifier builds a verifier from the given configuration.
func NewVerifier(cfg Config) (*Verifier, error) {
	cfg, err := cfg.prepare()
	if err != nil {
		return nil, err
	}
	key, err := newSigningKey(cfg.Secret)
	if err != nil {
		return nil, err
	}
	return &Verifier{
		key:       key,
		audience:  cfg.Audience,
		clockSkew: cfg.ClockSkew,
		now:       cfg.Now,
	}, nil
}

// Audience returns the audience the verifier requires.
func (v *Verifier) Audience() string {
	return v.audience
}

// Verify checks the token and returns its claims.
func (v *Verifier) Verify(token string) (*Claims, error) {
	parsed, err := v.Decode(token)
	if err != nil {
		return nil, err
	}
	return &parsed.Claims, nil
}

// Decode checks the token exactly like Verify and also returns the
// protected header.
func (v *Verifier) Decode(token string) (*Token, error) {
	header, err := parseStructure(token)
	if err != nil {
		return nil, err
	}

	if header.Algorithm != signingAlgorithm.String() {
		return nil, newError(ErrCodeInvalidSignature, fmt.Errorf("unexpected signing algorithm %q", header.Algorithm))
	}
	payload, err := jws.Verify([]byte(token), jws.WithKey(signingAlgorithm, v.key))
	if err != nil {
		return nil, newError(ErrCodeInvalidSignature, err)
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, newError(ErrCodeMalformed, fmt.Errorf("decode claims: %w", err))
	}

	if err := v.validate(&claims); err != nil {
		return nil, err
	}
	return &Token{Header: header, Claims: claims}, nil
}

func (v *Verifier) validate(claims *Claims) error {
	now := v.now()
	if exp := claims.ExpiresAt(); now.After(exp.Add(v.clockSkew)) {
		return newError(ErrCodeExpired, fmt.Errorf("expired at %s", exp.Format(time.RFC3339)))
	}
	if claims.Audience != v.audience {
		return newError(ErrCodeAudienceMismatch, fmt.Errorf("audience mismatch: got %q, want %q", claims.Audience, v.audience))
	}
	return nil
}

// parseStructure checks the compact serialization and returns the
// protected header.
func parseStructure(token string) (Header, error) {
	if token == "" {
		return Header{}, newError(ErrCodeMalformed, errors.New("token is empty"))
	}
	// encoding/base64 skips CR and LF even in strict mode.
	if strings.ContainsAny(token, "\r\n") {
		return Header{}, newError(ErrCodeMalformed, errors.New("token contains line breaks"))
	}
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return Header{}, newError(ErrCodeMalformed, fmt.Errorf("expected 3 segments, got %d", len(segments)))
	}
	// Only canonical unpadded base64url is accepted, so each token has a
	// single textual form.
	for idx, segment := range segments {
		if _, err := segmentEncoding.DecodeString(segment); err != nil {
			return Header{}, newError(ErrCodeMalformed, fmt.Errorf("%s segment: %w", segmentNames[idx], err))
		}
	}
	msg, err := jws.Parse([]byte(token))
	if err != nil {
		return Header{}, newError(ErrCodeMalformed, err)
	}
	sigs := msg.Signatures()
	if len(sigs) != 1 {
		return Header{}, newError(ErrCodeMalformed, fmt.Errorf("expected 1 signature, got %d", len(sigs)))
	}
	protected := sigs[0].ProtectedHeaders()
	return Header{
		Algorithm: protected.Algorithm().String(),
		Type:      protected.Type(),
	}, nil
}
