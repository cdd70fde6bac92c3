//go:build unix

package catalogue

import (
	"fmt"
	"io/fs"
	"os/user"
	"strconv"
	"syscall"
)

func lookupOwner(info fs.FileInfo) (string, error) {
	stat, ok := info.Sys().(*syscall.Stat_t)

	if !ok {
		return "", ErrOwnershipUnavailable
	}

	owner, err := user.LookupId(strconv.FormatUint(uint64(stat.Uid), 10))

	if err != nil {
		return "", fmt.Errorf("%w: uid %d: %v", ErrOwnershipUnavailable, stat.Uid, err)
	}

	return owner.Username, nil
}
