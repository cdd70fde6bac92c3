package models

import "time"

// Catalogue is one directory's manifest as seen during the last index run.
type Catalogue struct {
	ID             uint   `gorm:"primarykey"`
	Path           string `gorm:"uniqueIndex"`
	Directory      string
	ManifestExists bool
	LoadError      string
	IndexedAt      time.Time
	Files          []CatalogueFile
}

type CatalogueFile struct {
	ID          uint `gorm:"primarykey"`
	CatalogueID uint `gorm:"index"`
	Filename    string
	Size        *int64
	DiskSize    *int64
	Owner       string
	DateAdded   string
	Comment     string
	Catalogued  bool
	OnDisk      bool
	Hash        *string `gorm:"index"`
}
