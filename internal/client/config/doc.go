// Package config loads and stores the admin CLI settings.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. The JSON file at Path(), when it exists.
//  3. Environment: PMD_SERVER, PMD_TOKEN, PMD_TIMEOUT.
//  4. Global command-line flags, applied by the CLI itself.
//
// # JSON schema
//
//	{
//	  "server": "http://127.0.0.1:8080",
//	  "token": "eyJ...",
//	  "timeout": "30s"
//	}
package config
