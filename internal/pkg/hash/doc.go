// Package hash provides helpers for hashing and verifying secrets.
//
// Passwords are stored as Argon2id (or bcrypt) encoded hashes and checked by
// recomputing the hash from user input. HMACSHA256 derives stable, non
// reversible keys from identifiers such as email addresses.
package hash
