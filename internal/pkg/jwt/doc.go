// Package jwt issues and verifies the session tokens stored in the "token"
// cookie after signup or login.
//
// Tokens are HS512 signed and carry the user id and email. Verified claims are
// placed in the request context by the authentication middleware and read back
// with GetAuth.
package jwt
