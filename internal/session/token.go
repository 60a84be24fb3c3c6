// ABOUTME: Session token issuance and HMAC-SHA256 verification
// ABOUTME: Tokens are valid for 24h and signed with the admin password

package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// MaxAge is how long a token remains valid after issuance. A token
// aged exactly MaxAge still verifies; one millisecond older does not.
const MaxAge = 24 * time.Hour

// Token is the signed session credential carried by the auth cookie.
type Token struct {
	Username  string `json:"username"`
	IssuedAt  int64  `json:"timestamp"` // epoch milliseconds
	Signature string `json:"signature"` // lowercase hex HMAC-SHA256
}

// sign computes the HMAC-SHA256 over the canonical "username:millis"
// string, rendered as lowercase hex.
func sign(username string, issuedAt int64, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s:%d", username, issuedAt)
	return hex.EncodeToString(mac.Sum(nil))
}

// Issue creates a token for username signed with secret, stamped with
// the given issuance time.
func Issue(username string, now time.Time, secret string) Token {
	issuedAt := now.UnixMilli()
	return Token{
		Username:  username,
		IssuedAt:  issuedAt,
		Signature: sign(username, issuedAt, secret),
	}
}

// Verify reports whether tok is a currently valid token under secret.
// It rejects tokens with missing fields, tokens older than MaxAge, and
// tokens whose signature does not match; it never returns an error to
// the caller. Comparison goes through hmac.Equal to stay constant-time.
//
// A token stamped in the future verifies as long as its computed age
// stays within MaxAge; negative age is deliberately not special-cased.
func Verify(tok Token, secret string, now time.Time) bool {
	if tok.Username == "" || tok.IssuedAt == 0 || tok.Signature == "" {
		return false
	}

	if now.UnixMilli()-tok.IssuedAt > MaxAge.Milliseconds() {
		return false
	}

	got, err := hex.DecodeString(tok.Signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s:%d", tok.Username, tok.IssuedAt)
	return hmac.Equal(got, mac.Sum(nil))
}
