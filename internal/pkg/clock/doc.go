// Package clock hides the wall clock behind Clocker.
//
// OTP expiry, session issuance and the email footer year all read time
// through it, and tests pin it to a fixed instant.
package clock
