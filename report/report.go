// Package report collects catalogue discrepancies across a tree and renders them as markdown.
package report

import (
	"data-catalogue/catalogue"
	"fmt"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
	"io"
	"strings"
	"time"
)

const Tool = "data-catalogue"

type Metadata struct {
	Tool        string    `yaml:"tool"`
	Version     string    `yaml:"version"`
	RunID       string    `yaml:"run_id"`
	Root        string    `yaml:"root"`
	Recursive   bool      `yaml:"recursive"`
	GeneratedAt time.Time `yaml:"generated"`
}

type SizeMismatch struct {
	Path         string
	ManifestSize int64
	DiskSize     int64
}

type FailedCatalogue struct {
	Path string
	Err  error
}

type Report struct {
	Metadata Metadata

	MissingCatalogues     []string
	MissingFromFilesystem []string
	MissingFromManifest   []string

	SizeMismatches    []SizeMismatch
	FailedCatalogues  []FailedCatalogue
	PresentCount      int
	UncataloguedBytes int64
}

// Build walks the tree in pre-order with an explicit stack. Listings keep traversal order.
func Build(root *catalogue.Catalogue, metadata Metadata) *Report {
	if metadata.Tool == "" {
		metadata.Tool = Tool
	}

	report := &Report{Metadata: metadata}

	catalogue.Walk(root, func(c *catalogue.Catalogue) bool {
		if c.Err() != nil {
			report.FailedCatalogues = append(report.FailedCatalogues, FailedCatalogue{Path: c.Path(), Err: c.Err()})
			return true
		}

		if !c.ManifestExists() {
			report.MissingCatalogues = append(report.MissingCatalogues, c.Dir())
		}

		for _, record := range c.MissingFromFilesystem() {
			report.MissingFromFilesystem = append(report.MissingFromFilesystem, record.Path())
		}

		for _, record := range c.MissingFromManifest() {
			report.MissingFromManifest = append(report.MissingFromManifest, record.Path())
			report.UncataloguedBytes += record.DiskSize
		}

		for _, record := range c.SizeMismatches() {
			report.SizeMismatches = append(report.SizeMismatches, SizeMismatch{
				Path:         record.Path(),
				ManifestSize: record.Size,
				DiskSize:     record.DiskSize,
			})
		}

		report.PresentCount += len(c.Present())

		return true
	})

	return report
}

func (r *Report) DiscrepancyCount() int {
	return len(r.MissingCatalogues) + len(r.MissingFromFilesystem) + len(r.MissingFromManifest)
}

// Render writes the front matter, summary and listings in a fixed section order.
func (r *Report) Render(w io.Writer) error {
	frontMatter, err := yaml.Marshal(r.Metadata)

	if err != nil {
		return err
	}

	var b strings.Builder

	b.WriteString("---\n")
	b.Write(frontMatter)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# Data Catalogue Report\n\n")

	b.WriteString("## Summary\n\n")
	b.WriteString("| Category | Count |\n")
	b.WriteString("| --- | ---: |\n")
	fmt.Fprintf(&b, "| Catalogued and present | %s |\n", humanize.Comma(int64(r.PresentCount)))
	fmt.Fprintf(&b, "| Missing catalogues | %s |\n", humanize.Comma(int64(len(r.MissingCatalogues))))
	fmt.Fprintf(&b, "| Missing from file system | %s |\n", humanize.Comma(int64(len(r.MissingFromFilesystem))))
	fmt.Fprintf(&b, "| Missing from manifest | %s (%s) |\n", humanize.Comma(int64(len(r.MissingFromManifest))), humanize.Bytes(uint64(r.UncataloguedBytes)))
	fmt.Fprintf(&b, "| Size mismatches | %s |\n", humanize.Comma(int64(len(r.SizeMismatches))))
	fmt.Fprintf(&b, "| Failed catalogues | %s |\n", humanize.Comma(int64(len(r.FailedCatalogues))))

	writeListing(&b, "Missing catalogues", "Directories without a catalogue.csv.", r.MissingCatalogues)
	writeListing(&b, "Missing from file system", "Files listed in a catalogue but not found on disk.", r.MissingFromFilesystem)
	writeListing(&b, "Missing from manifest", "Files found on disk but not listed in a catalogue.", r.MissingFromManifest)

	var mismatches []string
	for _, mismatch := range r.SizeMismatches {
		mismatches = append(mismatches, fmt.Sprintf("%s (catalogued %d bytes, on disk %d bytes)", mismatch.Path, mismatch.ManifestSize, mismatch.DiskSize))
	}
	writeListing(&b, "Size mismatches", "Catalogued files whose size on disk differs from the catalogue.", mismatches)

	var failures []string
	for _, failure := range r.FailedCatalogues {
		failures = append(failures, fmt.Sprintf("%s: %v", failure.Path, failure.Err))
	}
	writeListing(&b, "Failed catalogues", "Catalogues that could not be read; their subfolders were skipped.", failures)

	_, err = io.WriteString(w, b.String())
	return err
}

func writeListing(b *strings.Builder, title, description string, lines []string) {
	fmt.Fprintf(b, "\n## %s\n\n%s\n\n```text\n", title, description)

	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("```\n")
}
