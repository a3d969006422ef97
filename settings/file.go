//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Open returns the settings stored in path, using the codec matching the
// file extension. A missing file yields empty settings.
func Open(path string) (*Settings, error) {
	s := NewWithCodec(CodecForPath(path))
	if err := LoadFile(s, path); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile loads s from path. If the file does not exist s is left
// unchanged and no error is returned.
func LoadFile(s Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("opening settings file: %w", err)
	}
	defer f.Close()

	if err := s.Load(f); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// SaveFile writes s to path, creating the parent directories if needed.
// The file is replaced atomically via a temporary file and rename.
func SaveFile(s Store, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("creating settings file: %w", err)
	}

	err = s.Save(f)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		os.Remove(tmp) // best effort cleanup
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
