package main

import (
	"data-catalogue/config"
	"fmt"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var testTime = time.Date(2022, 1, 13, 9, 30, 0, 0, time.UTC)

// createTree writes every relative path to a fresh temporary directory.
func createTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()

	for relativePath, content := range files {
		fullPath := filepath.Join(root, filepath.FromSlash(relativePath))
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0750))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0600))
	}

	return root
}

func testContext(t *testing.T) (*Context, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)

	return &Context{
		Config: &config.Config{
			ReportDirectory:             t.TempDir(),
			ProjectRoot:                 t.TempDir(),
			MaxConcurrentFileOperations: 2,
			FileNamesToIgnore:           []string{".DS_Store"},
		},
		Log: zap.New(core).Sugar(),
		Out: io.Discard,
		Now: func() time.Time { return testTime },
	}, logs
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	// Each test gets its own shared in-memory database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	db, err := connect(dsn, gormConfig)
	require.NoError(t, err)

	return db
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(content)
}
