// Package config loads and validates the TOML configuration for umatl.
// Precedence: explicit --config path, then ~/.config/umatl/config.toml, then
// ./umatl.toml, then built-in defaults.
package config
