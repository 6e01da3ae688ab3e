// Package otp generates email one-time passwords and seals them in signed,
// self-expiring envelopes.
//
// Only the envelope is persisted. Reading it back requires the signing secret,
// and the envelope stops decoding once its embedded expiry has passed, even if
// the stored record says otherwise.
package otp
