// Package config centralizes application configuration.
//
// Configuration is sourced from environment variables, optionally overlaid
// by a local .env file. Defaults are declared as struct tags on the partial
// config types owned by each package, and bound into Viper by reflection so
// that AutomaticEnv picks up every key.
//
// Validate enforces the startup contract: the process must not reach the
// network with incomplete credentials.
package config
