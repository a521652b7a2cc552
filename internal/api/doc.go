// Package api implements the HTTP handlers for the savor API. Handlers
// decode and validate request bodies, call into the service layer, and map
// service errors to HTTP status codes without leaking internal details.
package api
