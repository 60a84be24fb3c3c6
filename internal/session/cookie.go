// ABOUTME: Cookie codec for the session token
// ABOUTME: One cookie holding base64url-encoded JSON of the token triple

package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// CookieName is the name of the session cookie.
const CookieName = "auth"

// ErrNoCookie is returned when the request carries no parseable
// session cookie.
var ErrNoCookie = errors.New("no auth cookie")

// ReadCookie extracts and decodes the session token from a request.
// A missing, empty, or malformed cookie yields ErrNoCookie; the caller
// treats all of these the same way.
func ReadCookie(r *http.Request) (Token, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Token{}, ErrNoCookie
	}

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return Token{}, ErrNoCookie
	}

	var tok Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return Token{}, ErrNoCookie
	}

	return tok, nil
}

// WriteCookie sets the session cookie for tok on the response.
func WriteCookie(w http.ResponseWriter, tok Token, secure bool) error {
	raw, err := json.Marshal(tok)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		Expires:  time.UnixMilli(tok.IssuedAt).Add(MaxAge),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the session cookie on the response.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
