// Package service provides the application services behind the API
// handlers: user lifecycle, gem accounting, AI-backed generation flows,
// and the notification queue. Services depend on store interfaces and the
// generation.Generator boundary, never on concrete platform types.
package service
