//go:build !alternative_driver

package main

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Requires CGO. Build with -tags alternative_driver for the pure Go driver.
func sqliteDialector(dsn string) gorm.Dialector {
	return sqlite.Open(dsn)
}
