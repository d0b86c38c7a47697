// Package otp issues and redeems short-lived numeric passcodes.
//
// A Generator produces six digit codes. A Store keeps at most one pending
// code per identity (normalized email) with an absolute expiry and redeems it
// exactly once. MemoryStore serves a single process and is swept by a
// background task; RedisStore shares pending codes across instances and lets
// Redis expire them.
package otp
