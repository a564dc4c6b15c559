// Package config loads the tool's settings from an optional TOML file under
// the user's config directory, with environment variable overrides.
//
// Everything has a sensible default, so the tool works without any
// configuration: the production API endpoint, the desktop app's credential
// location for the current platform, and output directories relative to the
// working directory. Precedence from weakest to strongest: defaults, config
// file, environment, command-line flags.
package config
