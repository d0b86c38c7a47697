// Package clock provides a tiny time abstraction.
//
// Expiry decisions (passcodes, sessions) read time through Clocker so tests
// can move time forward with Fake instead of sleeping.
package clock
