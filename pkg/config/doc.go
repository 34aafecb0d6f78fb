// Package config loads typed configuration from environment variables.
//
// Values are parsed into structs with github.com/caarlos0/env/v11 field tags.
// Before the first load the default .env file is read with
// github.com/joho/godotenv when present; variables already set in the process
// environment win over the file.
//
// Each configuration type is parsed once per process and cached, so packages
// can call Load for the same struct type without repeating the work:
//
//	var cfg httpserver.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Reset clears the cache; it exists for tests that change the environment
// between loads.
package config
