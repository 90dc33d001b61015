// Package dashboard serves the admin panel overview.
package dashboard
