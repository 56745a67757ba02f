package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.csv")

	require.NoError(t, WriteFileAtomic(path, []byte("address\n0xa\n")))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "address\n0xa\n", string(got))

	// Overwrite in place
	require.NoError(t, WriteFileAtomic(path, []byte("address\n")))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "address\n", string(got))

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteFileAtomicParentIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteFileAtomic(filepath.Join(blocker, "out.csv"), []byte("x"))
	require.Error(t, err)
}

func TestWriteFilesAtomicStagesBeforeRenaming(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "new_addresses.csv")
	require.NoError(t, os.WriteFile(first, []byte("previous\n"), 0o644))
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteFilesAtomic(
		PendingFile{Path: first, Data: []byte("address\n0xa\n")},
		PendingFile{Path: filepath.Join(blocker, "removed_addresses.csv"), Data: []byte("address,reason\n")},
	)
	require.Error(t, err)

	got, err := os.ReadFile(first)
	require.NoError(t, err)
	require.Equal(t, "previous\n", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestFingerprint(t *testing.T) {
	f1 := FingerprintOf([]byte("address\n0xa\n"))
	f2 := FingerprintOf([]byte("address\n0xa\n"))
	f3 := FingerprintOf([]byte("address\n0xb\n"))

	require.Equal(t, f1, f2)
	require.NotEqual(t, f1, f3)
	require.Len(t, f1.String(), 16)
}

func TestSetupLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&buf, "filter", false, true)
	logger.Info("hello", "rows", 3)
	logger.Debug("hidden")

	out := buf.String()
	require.Contains(t, out, `"msg":"hello"`)
	require.Contains(t, out, `"service":"filter"`)
	require.NotContains(t, out, "hidden")
}
