package catalogue

import (
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createTree writes every relative path to a fresh temporary directory. Paths ending in a slash
// are created as empty directories.
func createTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()

	for relativePath, content := range files {
		fullPath := filepath.Join(root, filepath.FromSlash(relativePath))

		if strings.HasSuffix(relativePath, "/") {
			require.NoError(t, os.MkdirAll(fullPath, 0750))
			continue
		}

		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0750))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0600))
	}

	return root
}

func observedOptions() (Options, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)

	return Options{Logger: zap.New(core).Sugar()}, logs
}

func filenames(records []*FileRecord) []string {
	var names []string

	for _, record := range records {
		names = append(names, record.Filename)
	}

	return names
}
