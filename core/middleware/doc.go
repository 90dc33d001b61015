// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//
// Request logging, CORS and rate limiting are wired from fiber's own
// middleware in cmd/start.go.
package middleware
