package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

var testConfigData = []byte(`debug: true
log_directory: Log
report_directory: Doc/Reports
db_path: Doc/catalogue.db
project_root: /data/ReMeltRadar21
max_concurrent_file_operations: 0
file_names_to_ignore:
  - .DS_Store
folder_names_to_ignore:
  - .git
`)

func TestParse(t *testing.T) {
	c, err := Parse(testConfigData)
	require.NoError(t, err)

	assert.True(t, c.IsDebug)
	assert.Equal(t, "Log", c.LogDirectory)
	assert.Equal(t, "Doc/Reports", c.ReportDirectory)
	assert.Equal(t, "Doc/catalogue.db", c.DBPath)
	assert.Equal(t, "/data/ReMeltRadar21", c.ProjectRoot)
	assert.Equal(t, int64(1), c.MaxConcurrentFileOperations)
	assert.Equal(t, []string{".DS_Store"}, c.FileNamesToIgnore)
	assert.Equal(t, []string{".git"}, c.FolderNamesToIgnore)
}

func TestLoadWritesDefaultConfigWhenMissing(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")

	c, err := Load(configFile, testConfigData)
	require.NoError(t, err)
	assert.Equal(t, "Log", c.LogDirectory)

	written, err := os.ReadFile(configFile)
	require.NoError(t, err)
	assert.Equal(t, testConfigData, written)
}

func TestLoadRejectsInvalidYaml(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("debug: [unterminated"), 0600))

	_, err := Load(configFile, testConfigData)
	assert.Error(t, err)
}

func TestParseRejectsInvalidIgnorePattern(t *testing.T) {
	_, err := Parse([]byte("file_names_to_ignore:\n  - \"[unclosed\"\n"))
	assert.ErrorIs(t, err, ErrInvalidIgnorePattern)
}
