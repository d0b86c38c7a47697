// Package instrument wires structured logging, tracing and metrics.
//
// Logging is always configured: JSON on stdout, correlation IDs from the
// context, and masking of sensitive attribute names such as passcodes and
// session tokens. When Config.Enabled is set, OpenTelemetry providers are
// built and logs are also exported over OTLP.
package instrument
