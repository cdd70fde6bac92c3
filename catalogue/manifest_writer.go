package catalogue

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
)

// AppendToManifest writes one row per record, creating the manifest with the full header when it
// does not exist or is empty. Rows follow the manifest's own column order. With no records this
// only makes sure the manifest and its header exist.
func (c *Catalogue) AppendToManifest(records []*FileRecord) (err error) {
	if len(records) == 0 && len(c.header) > 0 {
		return nil
	}

	file, err := os.OpenFile(path.Clean(c.path), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)

	if err != nil {
		return fmt.Errorf("%w: %v", ErrManifestWrite, err)
	}

	defer func() {
		closeErr := file.Close()

		if err == nil && closeErr != nil {
			err = fmt.Errorf("%w: %v", ErrManifestWrite, closeErr)
		}
	}()

	header := c.header
	writer := csv.NewWriter(file)

	if len(header) == 0 {
		header = Fields

		if err = writeHeader(file, writer, header); err != nil {
			return fmt.Errorf("%w: \"%s\": %v", ErrManifestWrite, c.path, err)
		}
	} else if err = ensureTrailingNewline(file); err != nil {
		return fmt.Errorf("%w: \"%s\": %v", ErrManifestWrite, c.path, err)
	}

	for _, record := range records {
		if err = writer.Write(ManifestRow(header, record)); err != nil {
			return fmt.Errorf("%w: \"%s\": %v", ErrManifestWrite, c.path, err)
		}
	}

	writer.Flush()

	if err = writer.Error(); err != nil {
		return fmt.Errorf("%w: \"%s\": %v", ErrManifestWrite, c.path, err)
	}

	c.header = header
	c.manifestExists = true

	return nil
}

// A manifest that exists but is empty still needs its header.
func writeHeader(file *os.File, writer *csv.Writer, header []string) error {
	info, err := file.Stat()

	if err != nil {
		return err
	}

	if info.Size() > 0 {
		if err = ensureTrailingNewline(file); err != nil {
			return err
		}
	}

	return writer.Write(header)
}

func ensureTrailingNewline(file *os.File) error {
	info, err := file.Stat()

	if err != nil {
		return err
	}

	if info.Size() == 0 {
		return nil
	}

	last := make([]byte, 1)

	if _, err = file.ReadAt(last, info.Size()-1); err != nil && err != io.EOF {
		return err
	}

	if last[0] == '\n' {
		return nil
	}

	_, err = file.Write([]byte("\n"))
	return err
}

// ManifestRow serialises a record in header order.
func ManifestRow(header []string, record *FileRecord) []string {
	row := make([]string, len(header))

	for i, field := range header {
		switch field {
		case FieldFilename:
			row[i] = record.Filename
		case FieldSize:
			if record.HasKnownSize() {
				row[i] = strconv.FormatInt(record.Size, 10)
			}
		case FieldOwner:
			row[i] = record.Owner
		case FieldDateAdded:
			row[i] = record.DateAdded
		case FieldComment:
			row[i] = record.Comment
		}
	}

	return row
}
