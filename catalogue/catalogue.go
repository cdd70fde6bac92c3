package catalogue

import (
	"errors"
	"fmt"
	"github.com/bmatcuk/doublestar/v4"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const ManifestFileName = "catalogue.csv"

type State int

const (
	Unloaded State = iota
	ManifestLoaded
	Reconciled
)

func (s State) String() string {
	switch s {
	case ManifestLoaded:
		return "manifest loaded"
	case Reconciled:
		return "reconciled"
	}

	return "unloaded"
}

// Logger is satisfied by *zap.SugaredLogger.
type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
}

type Options struct {
	Logger Logger

	// Glob patterns (doublestar syntax) matched against entry names
	FileNamesToIgnore   []string
	FolderNamesToIgnore []string
}

type Catalogue struct {
	path           string
	header         []string
	files          []*FileRecord
	index          map[string]*FileRecord
	subcatalogues  []*Catalogue
	manifestExists bool
	state          State
	err            error
	options        Options
}

// Open accepts a directory or an explicit manifest path. The manifest is not parsed until
// LoadFromManifest is called.
func Open(path string, options Options) (*Catalogue, error) {
	manifestPath, err := resolveManifestPath(path)

	if err != nil {
		return nil, err
	}

	if options.Logger == nil {
		options.Logger = nopLogger{}
	}

	return &Catalogue{
		path:    manifestPath,
		index:   map[string]*FileRecord{},
		options: options,
	}, nil
}

func resolveManifestPath(path string) (string, error) {
	absolutePath, err := filepath.Abs(path)

	if err != nil {
		return "", err
	}

	info, err := os.Stat(absolutePath)

	if err == nil && info.IsDir() {
		return filepath.Join(absolutePath, ManifestFileName), nil
	}

	if filepath.Base(absolutePath) != ManifestFileName {
		if err != nil {
			return "", err
		}

		return "", fmt.Errorf("%w: \"%s\"", ErrInvalidManifestName, absolutePath)
	}

	// A manifest that does not exist yet is fine as long as its directory does
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	return absolutePath, nil
}

func (c *Catalogue) Path() string {
	return c.path
}

func (c *Catalogue) Dir() string {
	return filepath.Dir(c.path)
}

func (c *Catalogue) Header() []string {
	return c.header
}

func (c *Catalogue) Files() []*FileRecord {
	return c.files
}

func (c *Catalogue) Subcatalogues() []*Catalogue {
	return c.subcatalogues
}

func (c *Catalogue) ManifestExists() bool {
	return c.manifestExists
}

func (c *Catalogue) State() State {
	return c.state
}

// Err is the load or scan failure recorded against this catalogue during traversal, if any.
func (c *Catalogue) Err() error {
	return c.err
}

// Contains checks identity by filename regardless of where the record came from.
func (c *Catalogue) Contains(record *FileRecord) bool {
	_, found := c.index[record.Filename]
	return found
}

func (c *Catalogue) Lookup(filename string) *FileRecord {
	return c.index[filename]
}

func (c *Catalogue) add(record *FileRecord) {
	c.files = append(c.files, record)
	c.index[record.Filename] = record
}

// ScanFilesystem reconciles the directory listing with the loaded records. With recursive set
// every subdirectory becomes a child catalogue, walked with an explicit worklist.
func (c *Catalogue) ScanFilesystem(recursive bool) error {
	pending := []*Catalogue{c}

	for len(pending) > 0 {
		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		childDirs, err := current.scanDirectory()

		if err != nil {
			if current == c {
				return err
			}

			current.err = err
			current.options.Logger.Errorf("Could not scan \"%s\": %v", current.Dir(), err)
			continue
		}

		if !recursive {
			continue
		}

		for _, childDir := range childDirs {
			child, err := Open(childDir, current.options)

			if err != nil {
				current.options.Logger.Errorf("Could not open catalogue in \"%s\": %v", childDir, err)
				continue
			}

			current.subcatalogues = append(current.subcatalogues, child)

			// The subtree of a broken manifest is skipped, siblings carry on
			if err = child.LoadFromManifest(); err != nil {
				child.err = err
				child.options.Logger.Errorf("Skipping \"%s\": %v", childDir, err)
				continue
			}

			pending = append(pending, child)
		}
	}

	return nil
}

func (c *Catalogue) scanDirectory() ([]string, error) {
	dir := c.Dir()
	entries, err := os.ReadDir(dir)

	if err != nil {
		return nil, err
	}

	logger := c.options.Logger
	var childDirs []string

	for _, entry := range entries {
		name := entry.Name()

		// Matched case-insensitively, Catalogue.CSV is still a manifest
		if strings.EqualFold(name, ManifestFileName) {
			continue
		}

		entryPath := filepath.Join(dir, name)

		// Symbolic links to directories are not followed
		if entry.IsDir() {
			if matchesAny(name, c.options.FolderNamesToIgnore) {
				logger.Debugf("Ignoring folder \"%s\"", entryPath)
				continue
			}

			childDirs = append(childDirs, entryPath)
			continue
		}

		existing, catalogued := c.index[name]

		// Ignore globs only keep uncatalogued files out, a catalogued file is always looked for
		if !catalogued && matchesAny(name, c.options.FileNamesToIgnore) {
			logger.Debugf("Ignoring file \"%s\"", entryPath)
			continue
		}

		info, err := os.Stat(entryPath)

		if err != nil {
			logger.Warnf("Could not stat \"%s\": %v", entryPath, err)
			continue
		}

		if !info.Mode().IsRegular() {
			logger.Debugf("Skipping \"%s\" as it is not a regular file", entryPath)
			continue
		}

		if catalogued {
			existing.OnDisk = true
			existing.DiskSize = info.Size()

			if existing.HasKnownSize() && existing.Size != info.Size() {
				logger.Warnf("\"%s\" is catalogued with %d bytes but is %d bytes on disk", entryPath, existing.Size, info.Size())
			} else {
				logger.Debugf("Found \"%s\" in catalogue", entryPath)
			}

			continue
		}

		record, err := fromFileInfo(dir, info)

		if err != nil {
			if !errors.Is(err, ErrOwnershipUnavailable) {
				logger.Warnf("Could not read \"%s\": %v", entryPath, err)
				continue
			}

			logger.Warnf("Owner of \"%s\" recorded as empty: %v", entryPath, err)
		}

		logger.Debugf("Could not find \"%s\" in catalogue", entryPath)
		c.add(record)
	}

	c.state = Reconciled

	return childDirs, nil
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}

	return false
}

// MissingFromFilesystem lists catalogued records with no regular file on disk.
func (c *Catalogue) MissingFromFilesystem() []*FileRecord {
	return c.filter(func(record *FileRecord) bool {
		return record.Catalogued && !record.OnDisk
	})
}

// MissingFromManifest lists files found on disk without a manifest row.
func (c *Catalogue) MissingFromManifest() []*FileRecord {
	return c.filter(func(record *FileRecord) bool {
		return !record.Catalogued
	})
}

// Present lists catalogued records that were found on disk.
func (c *Catalogue) Present() []*FileRecord {
	return c.filter(func(record *FileRecord) bool {
		return record.Catalogued && record.OnDisk
	})
}

func (c *Catalogue) SizeMismatches() []*FileRecord {
	return c.filter(func(record *FileRecord) bool {
		return record.Catalogued && record.OnDisk && record.HasKnownSize() && record.Size != record.DiskSize
	})
}

func (c *Catalogue) filter(predicate func(record *FileRecord) bool) []*FileRecord {
	if c.state != Reconciled {
		return nil
	}

	var records []*FileRecord

	for _, record := range c.files {
		if predicate(record) {
			records = append(records, record)
		}
	}

	return records
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
