package storage_test

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-backend/internal/storage"
)

func fileHeader(t *testing.T, name, content string) *multipart.FileHeader {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)

	storedName, err := store.Save(fileHeader(t, "report.pdf", "pdf bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(storedName, "_report.pdf"))

	data, err := os.ReadFile(store.Path(storedName))
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))

	require.NoError(t, store.Remove(storedName))
	_, err = os.Stat(store.Path(storedName))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveUniqueStoredNames(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(fileHeader(t, "report.pdf", "one"))
	require.NoError(t, err)
	second, err := store.Save(fileHeader(t, "report.pdf", "two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSaveStripsPathSegments(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)

	storedName, err := store.Save(fileHeader(t, "../../etc/passwd", "nope"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(storedName, "_passwd"))

	// The file lands inside the upload dir, never above it
	path := store.Path(storedName)
	assert.Equal(t, dir, filepath.Dir(path))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestPathIgnoresTraversalInStoredName(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)

	path := store.Path("../../outside.txt")
	assert.Equal(t, filepath.Join(dir, "outside.txt"), path)
}

func TestRemoveMissingFile(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove("never-stored.txt"))
}

func TestNewLocalStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := storage.NewLocalStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
