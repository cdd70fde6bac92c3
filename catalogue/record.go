package catalogue

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// UnknownSize is used when a manifest row carries no usable size.
const UnknownSize int64 = -1

const (
	FieldFilename  = "filename"
	FieldSize      = "size"
	FieldOwner     = "owner"
	FieldDateAdded = "date_added"
	FieldComment   = "comment"
)

// Fields is the fixed set of recognised manifest columns, in the order used for new manifests.
var Fields = []string{
	FieldFilename,
	FieldSize,
	FieldOwner,
	FieldDateAdded,
	FieldComment,
}

type FileRecord struct {
	Filename   string
	Size       int64
	Owner      string
	DateAdded  string
	Comment    string
	Catalogued bool

	// Set during reconciliation
	OnDisk   bool
	DiskSize int64

	dir string
}

// Path is the parent directory joined with the filename. It is never persisted.
func (record *FileRecord) Path() string {
	return filepath.Join(record.dir, record.Filename)
}

func (record *FileRecord) Dir() string {
	return record.dir
}

func (record *FileRecord) HasKnownSize() bool {
	return record.Size >= 0
}

func (record *FileRecord) String() string {
	return fmt.Sprintf("%s (%d bytes)", record.Filename, record.Size)
}

// Equals reports whether both records describe the same file with the same size.
func Equals(a, b *FileRecord) bool {
	return a.Filename == b.Filename && a.Size == b.Size
}

// SameIdentity reports whether both records describe the same file. Size is informational only.
func SameIdentity(a, b *FileRecord) bool {
	return a.Filename == b.Filename
}

// Less is only meaningful when the filenames match, otherwise it is false.
func Less(a, b *FileRecord) bool {
	return a.Filename == b.Filename && a.Size < b.Size
}

// Greater is only meaningful when the filenames match, otherwise it is false.
func Greater(a, b *FileRecord) bool {
	return a.Filename == b.Filename && a.Size > b.Size
}

func IsField(name string) bool {
	for _, field := range Fields {
		if field == name {
			return true
		}
	}

	return false
}

// FromManifestRow maps row values positionally onto the header columns.
func FromManifestRow(dir string, header []string, values []string) (*FileRecord, error) {
	if len(header) != len(values) {
		return nil, fmt.Errorf("%w: expected %d values but found %d", ErrMalformedManifest, len(header), len(values))
	}

	record := &FileRecord{
		Size:       UnknownSize,
		DiskSize:   UnknownSize,
		Catalogued: true,
		dir:        dir,
	}

	for i, field := range header {
		value := values[i]

		switch field {
		case FieldFilename:
			record.Filename = value
		case FieldSize:
			record.Size = parseSize(value)
		case FieldOwner:
			record.Owner = value
		case FieldDateAdded:
			record.DateAdded = value
		case FieldComment:
			record.Comment = value
		default:
			return nil, fmt.Errorf("%w: \"%s\"", ErrUnrecognizedColumn, field)
		}
	}

	if record.Filename == "" {
		return nil, fmt.Errorf("%w: row has no filename", ErrMalformedManifest)
	}

	return record, nil
}

func parseSize(value string) int64 {
	size, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)

	// Ensure we never carry a negative size
	if err != nil || size < 0 {
		return UnknownSize
	}

	return size
}

// FromFilesystemEntry builds an uncatalogued record from file metadata. When the owner cannot be
// resolved the owner is left empty.
func FromFilesystemEntry(path string) (*FileRecord, error) {
	info, err := os.Stat(path)

	if err != nil {
		return nil, err
	}

	record, err := fromFileInfo(filepath.Dir(path), info)

	if err != nil && !errors.Is(err, ErrOwnershipUnavailable) {
		return nil, err
	}

	return record, nil
}

// fromFileInfo returns a usable record alongside ErrOwnershipUnavailable when only the owner
// lookup failed.
func fromFileInfo(dir string, info fs.FileInfo) (*FileRecord, error) {
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: \"%s\"", ErrNotRegularFile, filepath.Join(dir, info.Name()))
	}

	record := &FileRecord{
		Filename:  info.Name(),
		Size:      info.Size(),
		DiskSize:  info.Size(),
		DateAdded: info.ModTime().UTC().Format(time.RFC3339),
		OnDisk:    true,
		dir:       dir,
	}

	owner, err := lookupOwner(info)
	record.Owner = owner

	return record, err
}
