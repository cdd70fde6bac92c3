package main

import (
	"data-catalogue/catalogue"
	"data-catalogue/crypto"
	"data-catalogue/models"
	"data-catalogue/utils"
	"github.com/schollz/progressbar/v3"
	"gorm.io/gorm"
)

// Index reconciles the tree under rootPath and replaces the stored rows for every catalogue in it,
// hashing each file found on disk.
func (ctx *Context) Index(rootPath string, recursive bool) error {
	if ctx.DB == nil {
		return ErrDatabaseNotInitialised
	}

	absoluteRootPath, err := ctx.resolveFolder(rootPath)

	if err != nil {
		return err
	}

	root, err := catalogue.Traverse(absoluteRootPath, recursive, ctx.catalogueOptions())

	if err != nil {
		return err
	}

	hashes := ctx.hashFilesOnDisk(root)
	indexedAt := ctx.now().UTC()
	catalogueCount := int64(0)
	fileCount := int64(0)

	err = ctx.DB.Transaction(func(tx *gorm.DB) error {
		var walkErr error

		catalogue.Walk(root, func(c *catalogue.Catalogue) bool {
			catalogueModel := newCatalogueModel(c, hashes)
			catalogueModel.IndexedAt = indexedAt

			walkErr = replaceCatalogue(tx, catalogueModel)

			if walkErr != nil {
				return false
			}

			catalogueCount++
			fileCount += int64(len(catalogueModel.Files))
			return true
		})

		return walkErr
	})

	if err != nil {
		return err
	}

	ctx.Log.Infof("Indexed %s holding %s", utils.Pluralize("catalogue", catalogueCount), utils.Pluralize("file", fileCount))

	return nil
}

func (ctx *Context) hashFilesOnDisk(root *catalogue.Catalogue) map[*catalogue.FileRecord]string {
	var onDisk []*catalogue.FileRecord

	catalogue.Walk(root, func(c *catalogue.Catalogue) bool {
		for _, record := range c.Files() {
			if record.OnDisk {
				onDisk = append(onDisk, record)
			}
		}

		return true
	})

	hashes := make(map[*catalogue.FileRecord]string, len(onDisk))

	// Nothing to do
	if len(onDisk) == 0 {
		return hashes
	}

	ctx.Log.Infof("Hashing %s", utils.Pluralize("file", int64(len(onDisk))))

	bar := progressbar.NewOptions(len(onDisk),
		progressbar.OptionSetWriter(ctx.out()),
		progressbar.OptionSetDescription("Hashing"),
		progressbar.OptionShowCount(),
	)

	orchestrator := utils.NewTaskOrchestrator(bar, ctx.Config.MaxConcurrentFileOperations)

	for _, record := range onDisk {
		record := record // per-iteration copy (go.mod targets 1.21 loop semantics)
		orchestrator.Go(func() {
			hash, err := crypto.HashFile(record.Path())

			if err != nil {
				ctx.Log.Warnf("Could not hash \"%s\": %v", record.Path(), err)
				return
			}

			// Maps are not threadsafe
			orchestrator.Lock()
			hashes[record] = hash
			orchestrator.Unlock()
		})
	}

	orchestrator.WaitForTasks()

	return hashes
}

func newCatalogueModel(c *catalogue.Catalogue, hashes map[*catalogue.FileRecord]string) *models.Catalogue {
	catalogueModel := &models.Catalogue{
		Path:           c.Path(),
		Directory:      c.Dir(),
		ManifestExists: c.ManifestExists(),
	}

	if c.Err() != nil {
		catalogueModel.LoadError = c.Err().Error()
	}

	for _, record := range c.Files() {
		fileModel := models.CatalogueFile{
			Filename:   record.Filename,
			Owner:      record.Owner,
			DateAdded:  record.DateAdded,
			Comment:    record.Comment,
			Catalogued: record.Catalogued,
			OnDisk:     record.OnDisk,
		}

		if record.HasKnownSize() {
			size := record.Size
			fileModel.Size = &size
		}

		if record.OnDisk {
			diskSize := record.DiskSize
			fileModel.DiskSize = &diskSize
		}

		if hash, found := hashes[record]; found {
			fileModel.Hash = &hash
		}

		catalogueModel.Files = append(catalogueModel.Files, fileModel)
	}

	return catalogueModel
}

func replaceCatalogue(tx *gorm.DB, catalogueModel *models.Catalogue) error {
	existing := tx.Model(&models.Catalogue{}).Select("id").Where("path = ?", catalogueModel.Path)

	result := tx.Where("catalogue_id IN (?)", existing).Delete(&models.CatalogueFile{})

	if result.Error != nil {
		return result.Error
	}

	result = tx.Where("path = ?", catalogueModel.Path).Delete(&models.Catalogue{})

	if result.Error != nil {
		return result.Error
	}

	return tx.Create(catalogueModel).Error
}
