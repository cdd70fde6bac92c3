package catalogue

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

// LoadFromManifest parses catalogue.csv. A manifest that does not exist yields no records.
func (c *Catalogue) LoadFromManifest() error {
	logger := c.options.Logger
	file, err := os.Open(path.Clean(c.path))

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warnf("Couldn't find \"%s\" - continuing without catalogued files", c.path)
			c.manifestExists = false
			c.state = ManifestLoaded
			return nil
		}

		return err
	}

	defer file.Close()

	c.manifestExists = true
	logger.Debugf("Loading \"%s\"", c.path)

	reader := csv.NewReader(file)
	// Row lengths are validated against the header per record
	reader.FieldsPerRecord = -1

	header, err := reader.Read()

	if err == io.EOF {
		// An empty manifest has no header yet
		c.state = ManifestLoaded
		return nil
	}

	if err != nil {
		return fmt.Errorf("%w: \"%s\": %v", ErrMalformedManifest, c.path, err)
	}

	header, err = ParseHeader(header)

	if err != nil {
		return fmt.Errorf("%w in \"%s\"", err, c.path)
	}

	c.header = header
	dir := c.Dir()

	for {
		row, err := reader.Read()

		if err == io.EOF {
			break
		}

		var parseErr *csv.ParseError

		// The reader resumes on the next line after a row level parse error
		if errors.As(err, &parseErr) {
			logger.Warnf("Skipping line %d of \"%s\": %v", parseErr.StartLine, c.path, err)
			continue
		}

		if err != nil {
			return fmt.Errorf("%w: \"%s\": %v", ErrMalformedManifest, c.path, err)
		}

		line, _ := reader.FieldPos(0)

		if isBlankRow(row) {
			continue
		}

		record, err := FromManifestRow(dir, header, row)

		if err != nil {
			logger.Warnf("Skipping line %d of \"%s\": %v", line, c.path, err)
			continue
		}

		if c.Contains(record) {
			logger.Warnf("%v: \"%s\" on line %d of \"%s\", keeping the first entry", ErrDuplicateManifestEntry, record.Filename, line, c.path)
			continue
		}

		c.add(record)
	}

	logger.Debugf("I am aware of %d files in \"%s\"", len(c.files), c.path)
	c.state = ManifestLoaded

	return nil
}

// ParseHeader checks every column is a recognised field and that none repeats.
func ParseHeader(names []string) ([]string, error) {
	seen := make(map[string]bool, len(names))
	header := make([]string, 0, len(names))

	for i, name := range names {
		// Spreadsheet tools like to prefix a byte order mark
		if i == 0 {
			name = trimByteOrderMark(name)
		}

		if !IsField(name) {
			return nil, fmt.Errorf("%w \"%s\"", ErrUnrecognizedColumn, name)
		}

		if seen[name] {
			return nil, fmt.Errorf("%w: column \"%s\" is repeated", ErrMalformedManifest, name)
		}

		seen[name] = true
		header = append(header, name)
	}

	if !seen[FieldFilename] {
		return nil, fmt.Errorf("%w: no \"%s\" column", ErrMalformedManifest, FieldFilename)
	}

	return header, nil
}

func trimByteOrderMark(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}

func isBlankRow(row []string) bool {
	for _, value := range row {
		if value != "" {
			return false
		}
	}

	return true
}
