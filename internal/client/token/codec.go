// Package token reads claims out of the compact session token issued at
// sign-in. The signature is deliberately not verified: the payload is
// decoded only to decide whether a stored session is worth restoring and
// when it lapses. Real authorization happens server-side on every request.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// now is a test seam for wall-clock comparisons.
var now = time.Now

var parser = jwt.NewParser()

// Payload returns the decoded claim set of tok. The second return value is
// false when tok is not a well-formed three-segment token.
func Payload(tok string) (jwt.MapClaims, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tok, claims); err != nil {
		return nil, false
	}
	return claims, true
}

// ExpiresAt returns the token's absolute expiry instant. The second return
// value is false when the token or its exp claim cannot be decoded.
func ExpiresAt(tok string) (time.Time, bool) {
	claims, ok := Payload(tok)
	if !ok {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// IsExpired reports whether tok is unusable: malformed, missing its exp
// claim, or with exp at or before the current time. Decoding failures count
// as expired, so an unreadable token can never gate the UI open.
func IsExpired(tok string) bool {
	exp, ok := ExpiresAt(tok)
	if !ok {
		return true
	}
	return !exp.After(now())
}
