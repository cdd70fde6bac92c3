package main

import (
	"data-catalogue/catalogue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const manifestHeader = "filename,size,owner,date_added,comment\n"

func TestUpdateIsIdempotent(t *testing.T) {
	ctx, _ := testContext(t)
	root := createTree(t, map[string]string{
		"a.txt":     "a",
		"sub/b.txt": "bb",
	})
	options := UpdateOptions{Recursive: true, Owner: "jdoe", Date: "20220113"}

	rowsWritten, err := ctx.Update(root, options)
	require.NoError(t, err)
	assert.Equal(t, 2, rowsWritten)

	rootManifest := readFile(t, filepath.Join(root, catalogue.ManifestFileName))
	subManifest := readFile(t, filepath.Join(root, "sub", catalogue.ManifestFileName))

	rowsWritten, err = ctx.Update(root, options)
	require.NoError(t, err)
	assert.Equal(t, 0, rowsWritten)

	assert.Equal(t, rootManifest, readFile(t, filepath.Join(root, catalogue.ManifestFileName)))
	assert.Equal(t, subManifest, readFile(t, filepath.Join(root, "sub", catalogue.ManifestFileName)))

	dataReportPath, dataReport, err := ctx.Report(root, ReportOptions{Recursive: true})
	require.NoError(t, err)
	assert.FileExists(t, dataReportPath)
	assert.Zero(t, dataReport.DiscrepancyCount())
}

func TestUpdateWritesGivenOwnerDateAndComment(t *testing.T) {
	ctx, _ := testContext(t)
	root := createTree(t, map[string]string{"a.txt": "a"})

	_, err := ctx.Update(root, UpdateOptions{Owner: "jdoe", Date: "20220113", Comment: "calibration"})
	require.NoError(t, err)

	assert.Equal(t, manifestHeader+"a.txt,1,jdoe,2022-01-13,calibration\n", readFile(t, filepath.Join(root, catalogue.ManifestFileName)))
}

func TestUpdateDefaultsToModificationTime(t *testing.T) {
	ctx, _ := testContext(t)
	root := createTree(t, map[string]string{"a.txt": "a"})
	modified := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(root, "a.txt"), modified, modified))

	_, err := ctx.Update(root, UpdateOptions{})
	require.NoError(t, err)

	c, err := catalogue.Open(root, catalogue.Options{})
	require.NoError(t, err)
	require.NoError(t, c.LoadFromManifest())

	record := c.Lookup("a.txt")
	require.NotNil(t, record)
	assert.Equal(t, "2021-06-01T12:00:00Z", record.DateAdded)
	assert.Equal(t, int64(1), record.Size)
	assert.Empty(t, record.Comment)
}

func TestUpdateRejectsInvalidDateBeforeTraversal(t *testing.T) {
	ctx, _ := testContext(t)
	root := createTree(t, map[string]string{"a.txt": "a"})

	_, err := ctx.Update(root, UpdateOptions{Date: "2022-01-13"})
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.NoFileExists(t, filepath.Join(root, catalogue.ManifestFileName))
}

func TestUpdateCreatesHeaderOnlyManifestForEmptyDirectory(t *testing.T) {
	ctx, _ := testContext(t)
	root := createTree(t, map[string]string{})

	rowsWritten, err := ctx.Update(root, UpdateOptions{})
	require.NoError(t, err)

	assert.Zero(t, rowsWritten)
	assert.Equal(t, manifestHeader, readFile(t, filepath.Join(root, catalogue.ManifestFileName)))
}

func TestUpdateWritesHeaderIntoEmptyManifest(t *testing.T) {
	ctx, _ := testContext(t)
	root := createTree(t, map[string]string{catalogue.ManifestFileName: ""})

	for i := 0; i < 2; i++ {
		rowsWritten, err := ctx.Update(root, UpdateOptions{})
		require.NoError(t, err)
		assert.Zero(t, rowsWritten)
		assert.Equal(t, manifestHeader, readFile(t, filepath.Join(root, catalogue.ManifestFileName)))
	}
}

func TestUpdateFollowsExistingColumnOrder(t *testing.T) {
	ctx, _ := testContext(t)
	root := createTree(t, map[string]string{
		catalogue.ManifestFileName: "size,filename\n1,a.txt",
		"a.txt":                    "a",
		"b.txt":                    "bb",
	})

	rowsWritten, err := ctx.Update(root, UpdateOptions{Comment: "ignored"})
	require.NoError(t, err)

	assert.Equal(t, 1, rowsWritten)
	assert.Equal(t, "size,filename\n1,a.txt\n2,b.txt\n", readFile(t, filepath.Join(root, catalogue.ManifestFileName)))
}

func TestUpdateWithSubfolders(t *testing.T) {
	ctx, _ := testContext(t)
	root := createTree(t, map[string]string{
		catalogue.ManifestFileName:          "filename\nraw\n",
		"raw/" + catalogue.ManifestFileName: "filename,size\n",
		"raw/a.dat":                         "aaa",
		"raw/b/c.dat":                       "cccc",
	})

	rowsWritten, err := ctx.Update(root, UpdateOptions{Recursive: true, Owner: "jdoe", Date: "20220113"})
	require.NoError(t, err)
	assert.Equal(t, 2, rowsWritten)

	assert.Equal(t, "filename\nraw\n", readFile(t, filepath.Join(root, catalogue.ManifestFileName)))
	assert.Equal(t, "filename,size\na.dat,3\n", readFile(t, filepath.Join(root, "raw", catalogue.ManifestFileName)))
	assert.Equal(t, manifestHeader+"c.dat,4,jdoe,2022-01-13,\n", readFile(t, filepath.Join(root, "raw", "b", catalogue.ManifestFileName)))
}

func TestUpdateWithoutSubfoldersLeavesChildrenAlone(t *testing.T) {
	ctx, _ := testContext(t)
	root := createTree(t, map[string]string{
		"a.txt":     "a",
		"sub/b.txt": "b",
	})

	rowsWritten, err := ctx.Update(root, UpdateOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, rowsWritten)
	assert.NoFileExists(t, filepath.Join(root, "sub", catalogue.ManifestFileName))
}

func TestUpdateSkipsUnreadableCatalogue(t *testing.T) {
	ctx, logs := testContext(t)
	root := createTree(t, map[string]string{
		"a/" + catalogue.ManifestFileName: "filename,bogus_field\n",
		"a/a.txt":                         "a",
		"b/b.txt":                         "b",
	})

	rowsWritten, err := ctx.Update(root, UpdateOptions{Recursive: true})
	require.NoError(t, err)

	assert.Equal(t, 1, rowsWritten)
	assert.Equal(t, "filename,bogus_field\n", readFile(t, filepath.Join(root, "a", catalogue.ManifestFileName)))
	assert.FileExists(t, filepath.Join(root, "b", catalogue.ManifestFileName))
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).FilterMessageSnippet("Not updating").Len())
}

func TestUpdateStopsOnWriteFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	ctx, _ := testContext(t)
	root := createTree(t, map[string]string{"a.txt": "a"})
	require.NoError(t, os.Chmod(root, 0500))
	t.Cleanup(func() { _ = os.Chmod(root, 0750) })

	_, err := ctx.Update(root, UpdateOptions{})
	assert.ErrorIs(t, err, catalogue.ErrManifestWrite)
}

func TestUpdateStopsAtFirstManifestWriteFailure(t *testing.T) {
	ctx, _ := testContext(t)
	root := createTree(t, map[string]string{
		"a/a.txt": "a",
		"b/b.txt": "b",
	})
	require.NoError(t, os.Symlink(filepath.Join(root, "nowhere", catalogue.ManifestFileName), filepath.Join(root, "a", catalogue.ManifestFileName)))

	_, err := ctx.Update(root, UpdateOptions{Recursive: true})
	assert.ErrorIs(t, err, catalogue.ErrManifestWrite)

	// The walk is pre-order so the root was written before the failure and b never was
	assert.Equal(t, manifestHeader, readFile(t, filepath.Join(root, catalogue.ManifestFileName)))
	assert.NoFileExists(t, filepath.Join(root, "b", catalogue.ManifestFileName))
}
