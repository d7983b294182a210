// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - WithCORS: Adds permissive CORS headers and handles OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//   - WithMetrics: Records request count and latency through OpenTelemetry instruments.
//   - WithRecovery: Converts panics into 500 responses (verbose outside production).
//   - WithStrictTransport: Enforces HTTPS redirection and sets the HSTS header.
//
// Provided helpers:
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers.
package controller
