// Package config defines harmonize's settings and their TOML persistence.
//
// Settings load from an optional config file (by default
// ~/.config/harmonize/config.toml) and are overlaid by command-line flags
// in the CLI. A missing config file is not an error; defaults apply.
package config
