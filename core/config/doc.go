// Package config provides configuration management for achievement-manager.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of every
// section and environment keys follow the SECTION_FIELD pattern.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - RACache: emulator directory (also read from RACACHE) and store backend
//   - Remote: snapshot server URL, timeout and serve mode cache
//   - Storage: S3/MinIO credentials for the s3 RACache backend
//   - Log: logging level and format
//   - Server: HTTP preview port and API key
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
