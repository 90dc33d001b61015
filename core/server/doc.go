// Package server holds the HTTP server configuration.
//
// While cmd/start.go builds the Fiber application, this package defines the
// settings it reads: listen port, CORS origins, the optional request limiter
// and the body size cap that bounds image uploads.
package server
