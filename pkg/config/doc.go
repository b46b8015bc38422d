// Package config loads the roadmap service configuration from a YAML file and
// applies environment overrides on top of the defaults.
package config
