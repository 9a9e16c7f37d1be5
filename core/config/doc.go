// Package config provides configuration management for the cost plugin.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, project name)
//   - Database: MySQL connection details for the model element store
//   - Storage: S3/MinIO credentials and bucket settings for element exports
//   - Log: Logging level and format
//   - Mapping: Cost mapping feature settings (cache TTL, object names)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
