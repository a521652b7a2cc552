// Package config defines the application's configuration structure and
// loading logic.
package config
