package jwtx

import (
	"encoding/json"
	"errors"
	"time"
)

var errMissingExpiration = errors.New(`"exp" claim is required`)

// Claims is the session payload signed into every token.
type Claims struct {
	Audience   string      `json:"aud"`
	Expiration NumericDate `json:"exp"`
	UserEmail  string      `json:"user_email"`
	UserRole   string      `json:"user_role"`
}

// ExpiresAt returns the expiration instant.
func (c *Claims) ExpiresAt() time.Time {
	return c.Expiration.Time
}

// UnmarshalJSON decodes the wire payload and requires the exp claim.
func (c *Claims) UnmarshalJSON(data []byte) error {
	type wire struct {
		Audience   string       `json:"aud"`
		Expiration *NumericDate `json:"exp"`
		UserEmail  string       `json:"user_email"`
		UserRole   string       `json:"user_role"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Expiration == nil {
		return errMissingExpiration
	}
	*c = Claims{
		Audience:   w.Audience,
		Expiration: *w.Expiration,
		UserEmail:  w.UserEmail,
		UserRole:   w.UserRole,
	}
	return nil
}

// Header holds the protected header fields of a verified token.
type Header struct {
	Algorithm string
	Type      string
}

// Token is a verified token with its header kept alongside the claims.
type Token struct {
	Header Header
	Claims Claims
}
