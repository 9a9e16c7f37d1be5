// Package database handles the optional MySQL connection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure MySQL connections based on the application's configuration. The
// database holds the BIM model element export; when it is unreachable the
// cost mapping feature falls back to the JSON export in object storage.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Optional database connection failed", zap.Error(err))
//	}
package database
