// Package mail sends email through a pluggable Mail implementation.
//
// SMTP delivers through a real relay. Log writes the message to the
// structured logger and is meant for local development, where the passcode
// is read from the log instead of an inbox.
package mail
