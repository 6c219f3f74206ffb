// Package config loads typed configuration from environment variables.
//
// Structs declare their variables with caarlos0/env tags. A .env file in the
// working directory is loaded once, before the first Load, without overriding
// variables that are already set:
//
//	var cfg identity.CognitoConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Load caches one value per type for the life of the process. Parse reads
// from an explicit variable set and never caches, which suits tests.
package config
