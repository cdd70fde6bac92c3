package main

import (
	"data-catalogue/catalogue"
	"data-catalogue/report"
	"data-catalogue/utils"
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"os"
	"path"
	"path/filepath"
)

const reportTimestampLayout = "20060102_150405"

type ReportOptions struct {
	Recursive bool

	// Report file to write, defaults to a timestamped file in the report directory
	Name string
}

// Report reconciles every catalogue under rootPath and writes the discrepancies to a markdown file.
// The path of the written report is returned.
func (ctx *Context) Report(rootPath string, options ReportOptions) (string, *report.Report, error) {
	absoluteRootPath, err := ctx.resolveFolder(rootPath)

	if err != nil {
		return "", nil, err
	}

	ctx.Log.Infof("I am about to write a data report for \"%s\"", absoluteRootPath)
	ctx.Log.Infof("Include subfolders? [%s]", yesNo(options.Recursive))

	root, err := catalogue.Traverse(absoluteRootPath, options.Recursive, ctx.catalogueOptions())

	if err != nil {
		return "", nil, err
	}

	generatedAt := ctx.now()

	dataReport := report.Build(root, report.Metadata{
		Version:     AppVersion,
		RunID:       uuid.NewString(),
		Root:        absoluteRootPath,
		Recursive:   options.Recursive,
		GeneratedAt: generatedAt.UTC(),
	})

	reportPath := options.Name

	if reportPath == "" {
		reportPath = filepath.Join(ctx.Config.ReportDirectory, fmt.Sprintf("data_report_%s.md", generatedAt.Format(reportTimestampLayout)))
	}

	err = writeReport(reportPath, dataReport)

	if err != nil {
		return "", nil, err
	}

	ctx.logReport(dataReport)
	ctx.printReportSummary(dataReport, reportPath)

	return reportPath, dataReport, nil
}

func writeReport(reportPath string, dataReport *report.Report) (err error) {
	if dir := filepath.Dir(reportPath); dir != "" {
		if err = os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}

	file, err := os.Create(path.Clean(reportPath))

	if err != nil {
		return err
	}

	defer func() {
		closeErr := file.Close()

		if err == nil {
			err = closeErr
		}
	}()

	return dataReport.Render(file)
}

func (ctx *Context) logReport(dataReport *report.Report) {
	if len(dataReport.MissingCatalogues) > 0 {
		ctx.Log.Warnf("The following %s have no catalogue:", utils.Pluralize("directory", int64(len(dataReport.MissingCatalogues))))

		for _, dir := range dataReport.MissingCatalogues {
			ctx.Log.Infof("\t%s", dir)
		}
	}

	if len(dataReport.MissingFromManifest) > 0 {
		ctx.Log.Warnf("The following %s were found in the file system but not recorded in the catalogues (%s):", utils.Pluralize("file", int64(len(dataReport.MissingFromManifest))), humanize.Bytes(uint64(dataReport.UncataloguedBytes)))

		for _, filePath := range dataReport.MissingFromManifest {
			ctx.Log.Infof("\t%s", filePath)
		}
	}

	if len(dataReport.MissingFromFilesystem) > 0 {
		ctx.Log.Warnf("The following %s were found in the catalogues but not recorded in the file system:", utils.Pluralize("file", int64(len(dataReport.MissingFromFilesystem))))

		for _, filePath := range dataReport.MissingFromFilesystem {
			ctx.Log.Infof("\t%s", filePath)
		}
	}

	for _, failure := range dataReport.FailedCatalogues {
		ctx.Log.Errorf("Could not read \"%s\": %v", failure.Path, failure.Err)
	}
}

func (ctx *Context) printReportSummary(dataReport *report.Report, reportPath string) {
	out := ctx.out()

	utils.PrintFormattedTitle(out, "Data Catalogue Report")
	utils.PrintCount(out, "Missing catalogues", len(dataReport.MissingCatalogues))
	utils.PrintCount(out, "Missing from file system", len(dataReport.MissingFromFilesystem))
	utils.PrintCount(out, "Missing from manifest", len(dataReport.MissingFromManifest))
	utils.PrintCount(out, "Size mismatches", len(dataReport.SizeMismatches))
	utils.PrintCount(out, "Failed catalogues", len(dataReport.FailedCatalogues))
	fmt.Fprintf(out, "Report written to \"%s\"\n", reportPath)
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}

	return "N"
}
