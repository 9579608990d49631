package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// exerciseKV runs the behaviour every backend must share.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, err := kv.Get(ctx, "users"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store: err = %v, want ErrNotFound", err)
	}

	if err := kv.Set(ctx, "users", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := kv.Get(ctx, "users")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Errorf("Get = %q", got)
	}

	// Overwrite replaces the whole value.
	if err := kv.Set(ctx, "users", []byte(`[]`)); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, err = kv.Get(ctx, "users")
	if err != nil {
		t.Fatalf("Get after overwrite: %v", err)
	}
	if string(got) != `[]` {
		t.Errorf("Get after overwrite = %q, want %q", got, `[]`)
	}

	if err := kv.Set(ctx, "../escape", []byte("x")); err == nil {
		t.Error("expected error for key containing a path separator")
	}

	for _, key := range []string{"", "a/b", `a\b`, ".."} {
		if _, err := kv.Get(ctx, key); err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q): err = %v, want an invalid key error", key, err)
		}
	}
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()
	exerciseKV(t, kv)

	if kv.Writes() != 2 {
		t.Errorf("Writes() = %d, want 2", kv.Writes())
	}
}

func TestMemoryKV_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	kv.Set(ctx, "users", []byte("abc"))

	v, _ := kv.Get(ctx, "users")
	v[0] = 'z'

	again, _ := kv.Get(ctx, "users")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through Get result: %q", again)
	}
}

func TestFileKV(t *testing.T) {
	kv, err := NewFileKV(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}
	exerciseKV(t, kv)

	entries, err := os.ReadDir(kv.Dir())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "users.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want [users.json]", names)
	}
}

func TestFileKV_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}
	if err := first.Set(ctx, "users", []byte(`[1]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	second, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}
	got, err := second.Get(ctx, "users")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `[1]` {
		t.Errorf("Get = %q, want %q", got, `[1]`)
	}
}

func TestNewFileKV_RequiresDir(t *testing.T) {
	if _, err := NewFileKV(""); err == nil {
		t.Error("expected error for empty directory")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "memory", opts: Options{Backend: "memory"}},
		{name: "file", opts: Options{Backend: "file", Dir: t.TempDir()}},
		{name: "default is file", opts: Options{Dir: t.TempDir()}},
		{name: "postgres without url", opts: Options{Backend: "postgres"}, wantErr: true},
		{name: "unknown", opts: Options{Backend: "redis"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, err := Open(ctx, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if kv != nil {
				kv.Close()
			}
		})
	}
}
