// util/resources.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// LoadResource reads the named file from the given resources directory,
// decompressing it transparently if a zstd-compressed variant is present.
// Unlike bundled assets that a GUI cannot run without, our reference
// datasets are non-fatal if missing, so errors are returned rather than
// panicking.
func LoadResource(dir, name string) ([]byte, error) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path + ".zst"); err == nil {
		path += ".zst"
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if filepath.Ext(path) == ".zst" {
		zr, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return zr.DecodeAll(b, nil)
	}

	return b, nil
}

// WriteFileAtomic writes b to the named file via a temporary file in the
// same directory followed by a rename, so that readers never observe a
// partially-written file.
func WriteFileAtomic(path string, b []byte) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
