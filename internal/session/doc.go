// Package session implements the stateless session token carried by
// the auth cookie.
//
// A token is the triple (username, issuedAt, signature), where the
// signature is an HMAC-SHA256 over "username:issuedAtMillis" keyed by
// the admin password. Tokens are valid for 24 hours from issuance and
// there is no revocation; a token stays valid until it ages out or the
// secret changes.
//
// On the wire the token is a single cookie whose value is the
// base64url-encoded JSON of the triple, so usernames containing any
// delimiter remain unambiguous.
package session
