//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "settings.properties"))
	require.NoError(t, err)
	require.True(t, s.IsEmpty())
}

func TestLoadFileMissingKeepsSettings(t *testing.T) {
	s := New()
	s.Set("a", "1")
	require.NoError(t, LoadFile(s, filepath.Join(t.TempDir(), "nope")))
	require.Equal(t, 1, s.IntOr("a", 0))
}

func TestSaveFileCreatesParents(t *testing.T) {
	for _, name := range []string{"settings.properties", "settings.yaml", "settings.toml"} {
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "launcher", "config")
			path := filepath.Join(dir, name)

			s := NewWithCodec(CodecForPath(path))
			s.Set("window.width", "854")
			s.Set("name", "steve")
			require.NoError(t, SaveFile(s, path))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			require.Len(t, entries, 1, "temporary files left behind")

			loaded, err := Open(path)
			require.NoError(t, err)
			if diff := cmp.Diff(s.All(), loaded.All()); diff != "" {
				t.Errorf("reloaded settings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveFileReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.properties")
	require.NoError(t, os.WriteFile(path, []byte("old=1\n"), 0644))

	s, err := Open(path)
	require.NoError(t, err)
	s.Set("new", "2")
	require.NoError(t, SaveFile(s, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new=2\nold=1\n", string(raw))
}

func TestOpenInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: [1, 2"), 0644))
	_, err := Open(path)
	require.Error(t, err)
}
