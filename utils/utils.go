package utils

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create directory %s", dir)
	}
	return nil
}

// PendingFile is a file to be written by WriteFilesAtomic.
type PendingFile struct {
	Path string
	Data []byte
}

// WriteFileAtomic writes data next to path and renames it into place, so readers
// never observe a partially written file.
func WriteFileAtomic(path string, data []byte) error {
	return WriteFilesAtomic(PendingFile{Path: path, Data: data})
}

// WriteFilesAtomic stages every file in a temp file next to its destination and
// only starts renaming once all of them are written. A staging failure leaves
// every destination untouched.
func WriteFilesAtomic(files ...PendingFile) error {
	staged := make([]string, 0, len(files))
	defer func() {
		for _, tmpName := range staged {
			os.Remove(tmpName) // no-op once renamed
		}
	}()

	for _, f := range files {
		tmpName, err := stageFile(f.Path, f.Data)
		if err != nil {
			return err
		}
		staged = append(staged, tmpName)
	}

	for i, f := range files {
		if err := os.Rename(staged[i], f.Path); err != nil {
			return errors.Wrapf(err, "rename %s to %s", staged[i], f.Path)
		}
	}
	return nil
}

func stageFile(path string, data []byte) (string, error) {
	if err := EnsureParentDir(path); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", errors.Wrapf(err, "create temp file for %s", path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", errors.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", errors.Wrapf(err, "chmod %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", errors.Wrapf(err, "close %s", tmpName)
	}
	return tmpName, nil
}
