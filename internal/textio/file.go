package textio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/imgajeed76/mojifix/internal/util"
)

// Document is a decoded text file.
type Document struct {
	Path string
	Text string
	Raw  []byte
	Mode fs.FileMode
}

// ReadFile reads the whole file at path and decodes it with enc.
func ReadFile(path string, enc Encoding) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, util.ResourceNotFoundError(path, err)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, util.NewError("Cannot repair a directory").WithContext(path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, util.ResourceNotFoundError(path, err)
		}
		return nil, err
	}

	text, err := enc.Decode(path, raw)
	if err != nil {
		return nil, err
	}

	return &Document{Path: path, Text: text, Raw: raw, Mode: info.Mode().Perm()}, nil
}

// WriteFile encodes text with enc and atomically replaces path with it: the
// bytes go to a temporary file in the same directory, which is then renamed
// over the target. A zero mode keeps the existing file's permissions, or
// 0644 for a new file.
func WriteFile(path, text string, enc Encoding, mode fs.FileMode) error {
	data, err := enc.Encode(path, text)
	if err != nil {
		return err
	}
	return WriteBytes(path, data, mode)
}

// WriteBytes atomically replaces path with data.
func WriteBytes(path string, data []byte, mode fs.FileMode) error {
	if mode == 0 {
		mode = 0o644
		if info, err := os.Stat(path); err == nil {
			mode = info.Mode().Perm()
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".mojifix-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

// BackupPath is where the original bytes of path are kept.
func BackupPath(path string) string {
	return path + ".bak"
}

// WriteBackup stores the original bytes next to the file.
func WriteBackup(doc *Document) error {
	return WriteBytes(BackupPath(doc.Path), doc.Raw, doc.Mode)
}
