// Package mail delivers transactional email.
//
// Callers build a Message and hand it to a Mail implementation. SMTP is the
// only provider wired today.
package mail
