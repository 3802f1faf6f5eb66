// Package controller contains HTTP middlewares and helper handlers used by the
// diagnostics server.
//
//   - WithAccessLog: attaches a request ID and request-scoped logger, logs access info.
//   - PprofMux: returns a ServeMux exposing net/http/pprof handlers.
package controller
