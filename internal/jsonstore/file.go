// Package jsonstore persists records as whole JSON files. A Collection
// holds one JSON array per file and a Document holds one JSON object per
// file. Each value owns a mutex that serializes every read and write of
// its file, so callers must wire exactly one instance per path.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// ErrStorage marks failures of the underlying file I/O.
var ErrStorage = errors.New("storage error")

func storageErr(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrStorage, op, path, err)
}

// writeAtomic replaces path with data: temp file in the same directory,
// fsync, rename, then fsync of the directory. Readers see either the old
// content or the new one.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return storageErr("mkdir", dir, err)
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return storageErr("create temp for", path, err)
	}
	tmp := file.Name()

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tmp)
		return storageErr("write", tmp, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmp)
		return storageErr("sync", tmp, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return storageErr("close", tmp, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return storageErr("chmod", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return storageErr("rename", path, err)
	}

	if d, err := os.Open(dir); err == nil {
		d.Sync()
		d.Close()
	}
	return nil
}

func marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// readRaw returns the file content with comments and trailing commas
// stripped. exists is false when the file is absent.
func readRaw(path string) (data []byte, exists bool, err error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, storageErr("read", path, err)
	}
	return bytes.TrimSpace(jsonc.ToJSON(raw)), true, nil
}
