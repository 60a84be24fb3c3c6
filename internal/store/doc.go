// Package store persists user credentials for server-backed
// deployments.
//
// The Storage interface is the narrow surface the auth handlers
// depend on: register, validate, change password. The SQLite
// implementation hashes credentials with bcrypt and creates its
// schema on first open. In localstorage mode no Storage exists at
// all and the request gate is bypassed.
package store
