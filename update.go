package main

import (
	"data-catalogue/catalogue"
	"data-catalogue/utils"
	"fmt"
	"time"
)

const (
	dateArgumentLayout = "20060102"
	dateAddedLayout    = "2006-01-02"
)

type UpdateOptions struct {
	Recursive bool
	Owner     string
	Comment   string

	// YYYYMMDD, file modification times are used when empty
	Date string
}

func ParseDate(date string) (time.Time, error) {
	parsed, err := time.Parse(dateArgumentLayout, date)

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: \"%s\"", ErrInvalidDate, date)
	}

	return parsed, nil
}

// Update appends a manifest row for every uncatalogued file under rootPath, creating manifests
// where they are missing. Any write failure aborts the whole update. The number of rows written
// is returned.
func (ctx *Context) Update(rootPath string, options UpdateOptions) (int, error) {
	dateAdded := ""

	if options.Date != "" {
		date, err := ParseDate(options.Date)

		if err != nil {
			return 0, err
		}

		dateAdded = date.Format(dateAddedLayout)
	}

	absoluteRootPath, err := ctx.resolveFolder(rootPath)

	if err != nil {
		return 0, err
	}

	ctx.Log.Infof("Updating catalogues for \"%s\". Include subfolders? [%s]", absoluteRootPath, yesNo(options.Recursive))

	root, err := catalogue.Traverse(absoluteRootPath, options.Recursive, ctx.catalogueOptions())

	if err != nil {
		return 0, err
	}

	rowsWritten := 0
	manifestsCreated := 0

	catalogue.Walk(root, func(c *catalogue.Catalogue) bool {
		if c.Err() != nil {
			ctx.Log.Warnf("Not updating \"%s\" as it could not be read: %v", c.Path(), c.Err())
			return true
		}

		missing := c.MissingFromManifest()

		// Nothing to do, unless an empty manifest still needs its header
		if len(missing) == 0 && c.ManifestExists() && len(c.Header()) > 0 {
			return true
		}

		rows := make([]*catalogue.FileRecord, 0, len(missing))

		for _, record := range missing {
			rows = append(rows, newManifestRow(record, options, dateAdded))
		}

		if !c.ManifestExists() {
			ctx.Log.Infof("Creating \"%s\"", c.Path())
			manifestsCreated++
		}

		err = c.AppendToManifest(rows)

		if err != nil {
			return false
		}

		for _, row := range rows {
			ctx.Log.Debugf("Catalogued \"%s\"", row.Path())
		}

		rowsWritten += len(rows)
		return true
	})

	if err != nil {
		return rowsWritten, err
	}

	ctx.Log.Infof("Created %s and catalogued %s", utils.Pluralize("catalogue", int64(manifestsCreated)), utils.Pluralize("file", int64(rowsWritten)))

	return rowsWritten, nil
}

func newManifestRow(record *catalogue.FileRecord, options UpdateOptions, dateAdded string) *catalogue.FileRecord {
	row := *record
	row.Comment = options.Comment

	if options.Owner != "" {
		row.Owner = options.Owner
	}

	if dateAdded != "" {
		row.DateAdded = dateAdded
	}

	return &row
}
