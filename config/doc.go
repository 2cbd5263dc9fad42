// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// ${ENV_VAR} placeholders in the file are expanded before parsing, and
// defaults are applied for everything the file leaves out.
package config
