// Package jwtx issues and verifies koompiPlay session tokens.
//
// Tokens are compact HS256 JWTs whose payload carries exactly four claims:
// aud, exp (whole seconds since the epoch), user_email and user_role. An
// Issuer signs them with a shared secret; a Verifier checks structure,
// signature, payload, expiration and audience in that order and reports
// failures as *Error values with a stable Code.
package jwtx
