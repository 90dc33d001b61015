package server

import (
	"strings"
	"time"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// CorsOrigins is the comma separated list of origins allowed to call the API.
	CorsOrigins string `mapstructure:"cors_origins" default:"*"`
	// RateLimit is the number of requests a client may make per RateWindowSeconds.
	// Zero disables the limiter.
	RateLimit int `mapstructure:"rate_limit" default:"0"`
	// RateWindowSeconds is the limiter window.
	RateWindowSeconds int `mapstructure:"rate_window_seconds" default:"60"`
	// MaxUploadMB caps request bodies, which bounds image uploads.
	MaxUploadMB int `mapstructure:"max_upload_mb" default:"10"`
}

// Origins returns the normalised CORS origin list accepted by fiber's cors middleware.
func (c Config) Origins() string {
	var out []string
	for _, o := range strings.Split(c.CorsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return "*"
	}
	return strings.Join(out, ",")
}

// RateLimited reports whether the request limiter should be installed.
func (c Config) RateLimited() bool {
	return c.RateLimit > 0
}

// RateWindow returns the limiter window, defaulting to one minute.
func (c Config) RateWindow() time.Duration {
	if c.RateWindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.RateWindowSeconds) * time.Second
}

// BodyLimit returns the maximum request body size in bytes.
func (c Config) BodyLimit() int {
	if c.MaxUploadMB <= 0 {
		return 10 * 1024 * 1024
	}
	return c.MaxUploadMB * 1024 * 1024
}
