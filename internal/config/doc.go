// Package config loads service configuration from environment variables and
// validates it at startup.
package config
