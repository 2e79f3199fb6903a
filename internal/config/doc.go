// Package config resolves scanboard's startup configuration.
//
// # Sources
//
// Values are taken from, highest priority first:
//
//  1. Command-line flags (-env, -api-url)
//  2. Environment variables SCANBOARD_ENV and SCANBOARD_API_URL
//  3. The TOML file, ~/.config/scanboard/config.toml by default
//  4. Built-in defaults
//
// A .env file in the working directory is loaded before anything else. It
// never overrides a variable that is already set.
//
// # File format
//
//	environment = "production"   # or "development" (default)
//	api_url     = "http://localhost:5000/api"
//	log_file    = "~/.local/state/scanboard/scanboard.log"
//	log_level   = "info"
//
// When api_url is not set anywhere, the environment picks the base URL:
// production talks to the hosted scanner, development to localhost:5000.
// A missing config file is not an error; a malformed one is.
//
// The configuration is read once. Nothing reloads it while the program runs.
package config
