// util/util_test.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestSelect(t *testing.T) {
	if Select(true, 1, 2) != 1 || Select(false, 1, 2) != 2 {
		t.Errorf("Select picked the wrong value")
	}
	if Select(true, "a", "b") != "a" {
		t.Errorf("Select picked the wrong value")
	}
}

func TestSortedMapKeys(t *testing.T) {
	m := map[string]int{"c": 0, "a": 1, "b": 2}
	if got := SortedMapKeys(m); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("SortedMapKeys = %v", got)
	}
	if got := SortedMapKeys(map[int]string{}); len(got) != 0 {
		t.Errorf("empty map gave keys %v", got)
	}
}

func TestSliceHelpers(t *testing.T) {
	s := []int{3, 1, 4, 1, 5}

	d := DuplicateSlice(s)
	d[0] = 99
	if s[0] != 3 {
		t.Errorf("DuplicateSlice shares storage with original")
	}

	m := MapSlice(s, func(v int) string { return strconv.Itoa(v) })
	if !slices.Equal(m, []string{"3", "1", "4", "1", "5"}) {
		t.Errorf("MapSlice = %v", m)
	}

	f := FilterSlice(s, func(v int) bool { return v > 2 })
	if !slices.Equal(f, []int{3, 4, 5}) {
		t.Errorf("FilterSlice = %v", f)
	}

	sum := ReduceSlice(s, func(v int, r int) int { return v + r }, 0)
	if sum != 14 {
		t.Errorf("ReduceSlice sum = %d", sum)
	}
}

func TestDuplicateSet(t *testing.T) {
	s := map[string]struct{}{"a": {}, "b": {}}
	d := DuplicateSet(s)
	delete(d, "a")
	if _, ok := s["a"]; !ok {
		t.Errorf("DuplicateSet shares storage with original")
	}
}

func TestUnmarshalJSONErrorDecoration(t *testing.T) {
	var v struct{ N int }
	err := UnmarshalJSON([]byte("{\n  \"N\": 1,\n  \"N\": oops\n}"), &v)
	if err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error should carry the line number: %v", err)
	}
}

func TestLoadResource(t *testing.T) {
	dir := t.TempDir()
	payload := []byte(`{"hello": "world"}`)

	if err := os.WriteFile(filepath.Join(dir, "plain.json"), payload, 0o644); err != nil {
		t.Fatal(err)
	}
	if b, err := LoadResource(dir, "plain.json"); err != nil || string(b) != string(payload) {
		t.Errorf("LoadResource plain: %q, %v", b, err)
	}

	zw, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "packed.json.zst"),
		zw.EncodeAll(payload, nil), 0o644); err != nil {
		t.Fatal(err)
	}
	if b, err := LoadResource(dir, "packed.json"); err != nil || string(b) != string(payload) {
		t.Errorf("LoadResource compressed: %q, %v", b, err)
	}

	if _, err := LoadResource(dir, "missing.json"); err == nil {
		t.Errorf("expected error for missing resource")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := WriteFileAtomic(path, []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("second")); err != nil {
		t.Fatal(err)
	}
	if b, err := os.ReadFile(path); err != nil || string(b) != "second" {
		t.Errorf("read back %q, %v", b, err)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory should only hold the target file: %v", entries)
	}
}
