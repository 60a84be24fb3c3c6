// Package gate implements the request interception layer that decides,
// per inbound request, whether the caller may proceed.
//
// # Decision Flow
//
// Every request passes through exactly one of these outcomes:
//
//   - Exempt: the path matches a static exemption prefix (login,
//     register, static assets, health) and bypasses all checks.
//   - SecretMissing: no admin password is configured anywhere; the
//     caller is redirected to /warning. This is a deployment
//     misconfiguration, not a per-user failure, so it applies to API
//     paths too.
//   - ModeBypass: the deployment runs in localstorage mode with no
//     server-side credential store; authentication is meaningless and
//     the request is allowed through.
//   - NoToken / TokenInvalid: the session cookie is absent, malformed,
//     expired, or carries a bad signature. API paths get a plain 401;
//     everything else is redirected to /login with the original path
//     and query preserved in a redirect parameter. The two cases are
//     deliberately indistinguishable to the caller.
//   - Authorized: the token verifies; the username is attached to the
//     request context and the request is forwarded unmodified.
//
// The decision core is a pure function of path, token, secret, and
// clock, so it is testable without HTTP plumbing.
package gate
