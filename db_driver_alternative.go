//go:build alternative_driver

package main

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func sqliteDialector(dsn string) gorm.Dialector {
	return sqlite.Open(dsn)
}
