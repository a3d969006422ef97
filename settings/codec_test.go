//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package settings

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, codec Codec, in string) map[string]string {
	t.Helper()
	got, err := codec.Decode(strings.NewReader(in))
	require.NoError(t, err)
	return got
}

func TestPropertiesDecode(t *testing.T) {
	in := "# comment\n" +
		"! another comment\n" +
		"\n" +
		"plain=value\n" +
		"  spaced   =   trimmed  \n" +
		"colon:sep\n" +
		"space sep\n" +
		"empty=\n" +
		"multi=first \\\n" +
		"      second\n" +
		"escaped\\ key=a\\tb\\nc\n" +
		"unicode=caf\\u00e9\n" +
		"windows=crlf\r\n"

	want := map[string]string{
		"plain":       "value",
		"spaced":      "trimmed  ",
		"colon":       "sep",
		"space":       "sep",
		"empty":       "",
		"multi":       "first second",
		"escaped key": "a\tb\nc",
		"unicode":     "café",
		"windows":     "crlf",
	}
	if diff := cmp.Diff(want, decode(t, Properties, in)); diff != "" {
		t.Errorf("decoded properties mismatch (-want +got):\n%s", diff)
	}
}

func TestPropertiesEncodeSorted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Properties.Encode(&buf, map[string]string{"b": "2", "a": "1", "c.d": "3"}))
	require.Equal(t, "a=1\nb=2\nc.d=3\n", buf.String())
}

func TestPropertiesDecodeSurrogatePairs(t *testing.T) {
	in := "smile=\\uD83D\\uDE00\n" +
		"mixed=a\\ud83c\\udfae b\n" +
		"lone=x\\uD83Dy\n"
	want := map[string]string{
		"smile": "😀",
		"mixed": "a🎮 b",
		"lone":  "x\uFFFDy",
	}
	if diff := cmp.Diff(want, decode(t, Properties, in)); diff != "" {
		t.Errorf("decoded properties mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripAwkwardStrings(t *testing.T) {
	data := map[string]string{
		"key with spaces":  "  leading spaces",
		"k=eq:colon":       "=starts with equals",
		"#hash":            "!bang",
		"multiline":        "line1\nline2\r\nline3",
		"trailing":         "ends with backslash\\",
		"tabs":             "\tindented",
		"unicode.ключ":     "значение",
		"":                 "empty key",
		"literal.escape":   `\u00e9 is not decoded`,
		"trailing.space":   "value   ",
		"formfeed":         "\fpage",
		"backslash.middle": `C:\Users\steve`,
		"emoji":            "😀",
	}
	for _, codec := range allCodecs {
		t.Run(codec.Name(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, codec.Encode(&buf, data))
			if diff := cmp.Diff(data, decode(t, codec, buf.String())); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s\nencoded:\n%s", diff, buf.String())
			}
		})
	}
}

func TestEmptyKeyRoundTrip(t *testing.T) {
	for _, codec := range allCodecs {
		t.Run(codec.Name(), func(t *testing.T) {
			s := NewWithCodec(codec)
			s.Set("", "empty key")
			var buf bytes.Buffer
			require.NoError(t, s.Save(&buf))

			loaded := NewWithCodec(codec)
			require.NoError(t, loaded.Load(&buf))
			require.Equal(t, "empty key", loaded.StringOr("", ""))
		})
	}
}

func TestInvalidUTF8(t *testing.T) {
	data := map[string]string{"bad.utf8": "a\xffb"}

	var buf bytes.Buffer
	require.NoError(t, Properties.Encode(&buf, data))
	require.Equal(t, data, decode(t, Properties, buf.String()))

	for _, codec := range []Codec{YAML, TOML} {
		t.Run(codec.Name(), func(t *testing.T) {
			var buf bytes.Buffer
			err := codec.Encode(&buf, data)
			require.ErrorIs(t, err, ErrInvalidValue)
			require.Zero(t, buf.Len())

			err = codec.Encode(&buf, map[string]string{"\xfe": "ok"})
			require.ErrorIs(t, err, ErrInvalidValue)
		})
	}
}

func TestYAMLDecodeFlattens(t *testing.T) {
	in := "actor: alice\n" +
		"defaults.priority: high\n" +
		"window:\n" +
		"  width: 854\n" +
		"  fullscreen: false\n" +
		"empty:\n"
	want := map[string]string{
		"actor":             "alice",
		"defaults.priority": "high",
		"window.width":      "854",
		"window.fullscreen": "false",
		"empty":             "",
	}
	if diff := cmp.Diff(want, decode(t, YAML, in)); diff != "" {
		t.Errorf("decoded yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLEncodeFlat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML.Encode(&buf, map[string]string{"b.c": "x", "a": "8080"}))
	require.Equal(t, "a: \"8080\"\nb.c: x\n", buf.String())
}

func TestYAMLRejectsLists(t *testing.T) {
	_, err := YAML.Decode(strings.NewReader("mods:\n  - a\n  - b\n"))
	require.Error(t, err)
	_, err = YAML.Decode(strings.NewReader("just a scalar\n"))
	require.Error(t, err)
}

func TestYAMLDecodeEmptyKeys(t *testing.T) {
	in := "\"\": top\n" +
		"window:\n" +
		"  \"\": nested\n"
	want := map[string]string{
		"":        "top",
		"window.": "nested",
	}
	if diff := cmp.Diff(want, decode(t, YAML, in)); diff != "" {
		t.Errorf("decoded yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestTOMLDecodeFlattens(t *testing.T) {
	in := "name = \"steve\"\n" +
		"\"http.user-agent\" = \"ua/1\"\n" +
		"\n" +
		"[window]\n" +
		"width = 854\n" +
		"scale = 1.5\n" +
		"fullscreen = true\n"
	want := map[string]string{
		"name":              "steve",
		"http.user-agent":   "ua/1",
		"window.width":      "854",
		"window.scale":      "1.5",
		"window.fullscreen": "true",
	}
	if diff := cmp.Diff(want, decode(t, TOML, in)); diff != "" {
		t.Errorf("decoded toml mismatch (-want +got):\n%s", diff)
	}
}

func TestTOMLRejectsArrays(t *testing.T) {
	_, err := TOML.Decode(strings.NewReader("mods = [\"a\", \"b\"]\n"))
	require.Error(t, err)
}

func TestCodecForPath(t *testing.T) {
	require.Equal(t, YAML, CodecForPath("/etc/launcher/settings.yaml"))
	require.Equal(t, YAML, CodecForPath("settings.YML"))
	require.Equal(t, TOML, CodecForPath("settings.toml"))
	require.Equal(t, Properties, CodecForPath("settings.properties"))
	require.Equal(t, Properties, CodecForPath("settings"))
}
