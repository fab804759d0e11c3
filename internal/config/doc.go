// Package config loads application configuration from environment variables
// (prefix DATAMAP) layered over an optional YAML file, and centralizes the
// directory layout used by the CLI tools and the web service.
package config
