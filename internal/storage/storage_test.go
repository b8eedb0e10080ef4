package storage

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/lofiroom/lofid/pkg/focuslib"
)

// Both stores must satisfy the shared document-store surface.
var (
	_ focuslib.Store = (*SqliteStore)(nil)
	_ focuslib.Store = (*FileStore)(nil)
)

func openTestSqlite(t *testing.T) *SqliteStore {
	t.Helper()
	s, err := OpenSqlite(filepath.Join(t.TempDir(), "documents.db"))
	if err != nil {
		t.Fatalf("OpenSqlite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func openTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(afero.NewMemMapFs(), "/profile/store")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return s
}

func runStoreSuite(t *testing.T, s focuslib.Store) {
	t.Helper()

	// Missing key reads as nil with no error.
	v, err := s.Get("absent")
	if err != nil || v != nil {
		t.Fatalf("Get(absent) = %v, %v", v, err)
	}

	if err := s.Set("doc", []byte(`{"n":1}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err = s.Get("doc")
	if err != nil || !bytes.Equal(v, []byte(`{"n":1}`)) {
		t.Fatalf("Get after Set = %s, %v", v, err)
	}

	// Overwrite replaces wholesale.
	if err := s.Set("doc", []byte(`{"n":2}`)); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, _ = s.Get("doc")
	if !bytes.Equal(v, []byte(`{"n":2}`)) {
		t.Fatalf("Get after overwrite = %s", v)
	}

	// Subscribers see each write, and unsubscribe sticks.
	var seen [][]byte
	off := s.OnChange("doc", func(value []byte) {
		seen = append(seen, value)
	})
	s.Set("doc", []byte(`{"n":3}`))
	off()
	s.Set("doc", []byte(`{"n":4}`))
	if len(seen) != 1 || !bytes.Equal(seen[0], []byte(`{"n":3}`)) {
		t.Fatalf("change callbacks = %q", seen)
	}

	// Changes on other keys do not leak across subscriptions.
	calls := 0
	defer s.OnChange("doc", func([]byte) { calls++ })()
	s.Set("other", []byte(`{}`))
	if calls != 0 {
		t.Fatalf("cross-key callback fired %d times", calls)
	}
}

func TestSqliteStore(t *testing.T) {
	runStoreSuite(t, openTestSqlite(t))
}

func TestFileStore(t *testing.T) {
	runStoreSuite(t, openTestFileStore(t))
}

func TestSqliteStoreReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "documents.db")
	s, err := OpenSqlite(path)
	if err != nil {
		t.Fatalf("OpenSqlite: %v", err)
	}
	if err := s.Set("doc", []byte("persisted")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	s2, err := OpenSqlite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	v, err := s2.Get("doc")
	if err != nil || string(v) != "persisted" {
		t.Fatalf("Get after reopen = %q, %v", v, err)
	}
}

func TestSqliteStoreKeysDelete(t *testing.T) {
	s := openTestSqlite(t)
	s.Set("b", []byte("2"))
	s.Set("a", []byte("1"))

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("Keys = %v", keys)
	}

	if err := s.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if v, _ := s.Get("a"); v != nil {
		t.Fatalf("Get after delete = %q", v)
	}
	// Deleting twice is fine.
	if err := s.Delete("a"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestFileStoreKeysDelete(t *testing.T) {
	s := openTestFileStore(t)
	s.Set("lofi-room-schedule-queue", []byte("[]"))
	s.Set("lofi-village-alarms", []byte("[]"))

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("Keys = %v", keys)
	}
	if err := s.Delete("lofi-village-alarms"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if v, _ := s.Get("lofi-village-alarms"); v != nil {
		t.Fatalf("Get after delete = %q", v)
	}
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	s := openTestFileStore(t)
	if err := s.Set("weird/../key", []byte("x")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := s.Get("weird/../key")
	if err != nil || string(v) != "x" {
		t.Fatalf("Get = %q, %v", v, err)
	}
}
