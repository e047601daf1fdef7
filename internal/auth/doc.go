// ABOUTME: Package documentation for authentication and authorization
// ABOUTME: Covers tokens, passwords, identity context and the policy table

// Package auth implements the authentication gate for orgadmin.
//
// Sessions are HS256-signed JWTs carried in an HttpOnly cookie and verified
// by Issuer; verification fails closed on any parse, signature, expiry or
// missing-claim problem. Passwords are bcrypt hashes with the salt embedded
// in the stored string. Authorization is a single policy table mapping
// privileged actions to the roles allowed to perform them; handlers consult
// it through the RequireAction middleware rather than comparing role names
// inline.
//
// The verified identity travels through request contexts via
// WithIdentity/FromContext, mirroring how handlers everywhere else in the
// codebase receive their caller.
package auth
