//go:build !unix

package catalogue

import "io/fs"

func lookupOwner(_ fs.FileInfo) (string, error) {
	return "", ErrOwnershipUnavailable
}
