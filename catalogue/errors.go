package catalogue

import "errors"

var (
	ErrInvalidManifestName    = errors.New("manifest files must be named " + ManifestFileName)
	ErrUnrecognizedColumn     = errors.New("unrecognised manifest column")
	ErrMalformedManifest      = errors.New("malformed manifest")
	ErrDuplicateManifestEntry = errors.New("duplicate manifest entry")
	ErrOwnershipUnavailable   = errors.New("file ownership is unavailable")
	ErrNotRegularFile         = errors.New("not a regular file")
	ErrManifestWrite          = errors.New("could not write manifest")
)
