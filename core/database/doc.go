// Package database handles database connections and schema migration.
//
// It provides a wrapper around GORM to configure MySQL connections (or a local
// SQLite file for development and tests) from the application's configuration.
//
// # Connect
//
// Connect opens the configured driver, tunes the pool and pings the server
// within the configured timeout.
//
// # Migrate
//
// Migrate runs GORM's AutoMigrate over the models each feature exposes.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	err = database.Migrate(db, products.Models()...)
package database
