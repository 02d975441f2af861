package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/keshon/cfgbak/internal/fs"
)

// hook swap helpers: install an override and return a restore func
func fsReadFileSwap(f func(string) ([]byte, error)) func() {
	orig := fs.GetReadFile()
	fs.SetReadFile(f)
	return func() { fs.SetReadFile(orig) }
}

func fsWriteFileSwap(f func(string, []byte, os.FileMode) error) func() {
	orig := fs.GetWriteFile()
	fs.SetWriteFile(f)
	return func() { fs.SetWriteFile(orig) }
}

func fsStatSwap(f func(string) (os.FileInfo, error)) func() {
	orig := fs.GetStat()
	fs.SetStat(f)
	return func() { fs.SetStat(orig) }
}

func fsRemoveSwap(f func(string) error) func() {
	orig := fs.GetRemove()
	fs.SetRemove(f)
	return func() { fs.SetRemove(orig) }
}

func fsRenameSwap(f func(string, string) error) func() {
	orig := fs.GetRename()
	fs.SetRename(f)
	return func() { fs.SetRename(orig) }
}

func fsCreateTempSwap(f func(string, string) (*os.File, error)) func() {
	orig := fs.GetCreateTemp()
	fs.SetCreateTemp(f)
	return func() { fs.SetCreateTemp(orig) }
}

func TestOSFS_Stat(t *testing.T) {
	called := false
	fsOverride := &fs.OSFS{}

	restore := fsStatSwap(func(path string) (os.FileInfo, error) {
		called = true
		return nil, errors.New("stat-failed")
	})
	defer restore()

	_, err := fsOverride.Stat("zzz")
	if !called {
		t.Fatal("expected stat hook to be called")
	}
	if err == nil || err.Error() != "stat-failed" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOSFS_ReadFile(t *testing.T) {
	called := false
	fsOverride := &fs.OSFS{}

	restore := fsReadFileSwap(func(path string) ([]byte, error) {
		called = true
		return []byte("hello"), nil
	})
	defer restore()

	out, err := fsOverride.ReadFile("x")
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("readFile hook not called")
	}
	if string(out) != "hello" {
		t.Fatalf("expected hello, got %s", out)
	}
}

func TestOSFS_WriteFile(t *testing.T) {
	called := false
	fsOverride := &fs.OSFS{}

	restore := fsWriteFileSwap(func(path string, data []byte, perm os.FileMode) error {
		called = true
		if path != "aaa" || string(data) != "bbb" || perm != 0o644 {
			t.Fatalf("unexpected write args")
		}
		return nil
	})
	defer restore()

	err := fsOverride.WriteFile("aaa", []byte("bbb"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("writeFile hook not called")
	}
}

func TestOSFS_Remove(t *testing.T) {
	called := false
	fsOverride := &fs.OSFS{}

	restore := fsRemoveSwap(func(path string) error {
		called = true
		return nil
	})
	defer restore()

	err := fsOverride.Remove("qqq")
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("remove hook not called")
	}
}

func TestOSFS_Rename(t *testing.T) {
	called := false
	fsOverride := &fs.OSFS{}

	restore := fsRenameSwap(func(old, new string) error {
		called = true
		if old != "a" || new != "b" {
			t.Fatalf("unexpected rename args")
		}
		return nil
	})
	defer restore()

	err := fsOverride.Rename("a", "b")
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("rename hook not called")
	}
}

func TestOSFS_CreateTempFile(t *testing.T) {
	called := false
	fsOverride := &fs.OSFS{}

	restore := fsCreateTempSwap(func(dir, pattern string) (*os.File, error) {
		called = true
		if dir != "tmp" || pattern != "x*" {
			t.Fatalf("unexpected CreateTemp args")
		}
		return nil, errors.New("tmp-failed")
	})
	defer restore()

	_, _, err := fsOverride.CreateTempFile("tmp", "x*")
	if err == nil || err.Error() != "tmp-failed" {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("CreateTemp hook not called")
	}
}

func TestOSFS_CreateTempFileReturnsName(t *testing.T) {
	tmp := t.TempDir()
	fsOverride := &fs.OSFS{}

	wc, name, err := fsOverride.CreateTempFile(tmp, "snap-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(name)

	if _, err := wc.Write([]byte("data")); err != nil {
		t.Fatal(err)
	}
	if err := wc.Close(); err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(name) != tmp {
		t.Fatalf("temp file %s not in %s", name, tmp)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "data" {
		t.Fatalf("unexpected temp content: %s", data)
	}
}

func TestOSFS_IsNotExist(t *testing.T) {
	fsOverride := &fs.OSFS{}
	_, err := os.Stat(filepath.Join(t.TempDir(), "missing"))
	if !fsOverride.IsNotExist(err) {
		t.Fatal("expected IsNotExist to be true")
	}
}

func TestOSFS_Exists(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "x")
	os.WriteFile(tmpFile, []byte("1"), 0o644)

	fsOverride := &fs.OSFS{}
	if !fsOverride.Exists(tmpFile) {
		t.Fatalf("expected file to exist")
	}
}
