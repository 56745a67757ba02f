package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetadataCommand(t *testing.T) {
	dir := t.TempDir()

	var out, logs bytes.Buffer
	cmd := newCommand(&logs)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--count", "2", "--out", dir})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "wrote 2 files under")

	data, err := os.ReadFile(filepath.Join(dir, "metadata", "1"))
	require.NoError(t, err)
	require.Contains(t, string(data), `"name": "Aligned ZK Arcade - Ticket - TESTNET ONLY #1"`)

	_, err = os.Stat(filepath.Join(dir, "metadata", "3"))
	require.True(t, os.IsNotExist(err))
}

func TestMetadataCommandRejectsArgs(t *testing.T) {
	var out, logs bytes.Buffer
	cmd := newCommand(&logs)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"extra"})
	require.Error(t, cmd.Execute())
}

func TestMetadataCommandNegativeCount(t *testing.T) {
	var stdout, logs bytes.Buffer
	cmd := newCommand(&logs)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	out := t.TempDir()
	cmd.SetArgs([]string{"--count=-3", "--out", out})
	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "metadata.count (-3) must not be negative")
	require.Contains(t, logs.String(), "Invalid configuration")
	require.NoDirExists(t, filepath.Join(out, "metadata"))
}

func TestMetadataCommandValidatesFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("metadata:\n  count: 1\n"), 0o644))

	var out, logs bytes.Buffer
	cmd := newCommand(&logs)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", configFile, "--count=-1", "--out", dir})
	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, logs.String(), "Invalid configuration")
}
