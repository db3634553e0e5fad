package shareserver

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestKV(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := OpenKV(filepath.Join(t.TempDir(), "shares.db"))
	if err != nil {
		t.Fatalf("opening test kv: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestKVPutGet(t *testing.T) {
	kv := openTestKV(t)

	if err := kv.Put("abc", []byte(`{"dateKey":"2025-01-15"}`), time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := kv.Get("abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"dateKey":"2025-01-15"}` {
		t.Errorf("Get = %s", got)
	}
}

func TestKVGetMissing(t *testing.T) {
	kv := openTestKV(t)

	if _, err := kv.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}
}

func TestKVExpiry(t *testing.T) {
	kv := openTestKV(t)

	if err := kv.Put("old", []byte("x"), -time.Minute); err != nil {
		t.Fatal(err)
	}

	// Expired rows are invisible to reads even before a sweep.
	if _, err := kv.Get("old"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(expired) = %v, want ErrNotFound", err)
	}

	n, err := kv.Sweep()
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if n != 1 {
		t.Errorf("Sweep dropped %d rows, want 1", n)
	}
}

func TestKVPutReplaces(t *testing.T) {
	kv := openTestKV(t)

	if err := kv.Put("k", []byte("v1"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := kv.Put("k", []byte("v2"), time.Hour); err != nil {
		t.Fatal(err)
	}
	got, err := kv.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v2" {
		t.Errorf("Get = %s, want v2", got)
	}
}

func TestKVDelete(t *testing.T) {
	kv := openTestKV(t)

	if err := kv.Put("k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}

	existed, err := kv.Delete("k")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !existed {
		t.Error("Delete reported no row for an existing share")
	}

	existed, err = kv.Delete("k")
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if existed {
		t.Error("second Delete reported a row")
	}
}
