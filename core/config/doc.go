// Package config provides configuration management for the Merch Manager.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Defaults are declared next to each field with
// the `default` struct tag and registered by reflection.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port, CORS origins and rate limiting
//   - Database: MySQL (or local SQLite) connection details
//   - Storage: S3/MinIO credentials and the product image bucket
//   - Cache: catalog snapshot TTL and optional Redis address
//   - Catalog: accepted product types and the low stock threshold
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
