// Package config loads runtime configuration from a YAML file with
// environment-variable overrides. A missing file yields defaults that
// watch the user's Downloads directory.
package config
