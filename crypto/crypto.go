package crypto

import (
	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/blake2b"
	"io"
	"os"
	"path"
)

// HashFile returns the base58 encoded BLAKE2b-512 digest of the file contents.
// BLAKE2b is faster than SHA-512 and base58 keeps the 64 byte digest to 87 or 88 characters.
func HashFile(filePath string) (string, error) {
	file, err := os.Open(path.Clean(filePath))

	if err != nil {
		return "", err
	}

	defer file.Close()

	hash, err := blake2b.New512(nil)

	if err != nil {
		return "", err
	}

	if _, err = io.Copy(hash, file); err != nil {
		return "", err
	}

	return base58.Encode(hash.Sum(nil)), nil
}
