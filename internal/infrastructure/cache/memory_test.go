package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	if err := store.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("get: got %q ok=%v err=%v", got, ok, err)
	}

	got[0] = 'x'
	again, _, _ := store.Get(ctx, "k")
	if string(again) != "v" {
		t.Fatal("returned slice aliases stored value")
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestMemoryStore_Expiration(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(10 * time.Millisecond)
	defer store.Close()

	_ = store.Set(ctx, "short", []byte("1"), 20*time.Millisecond)
	_ = store.Set(ctx, "forever", []byte("2"), 0)

	time.Sleep(60 * time.Millisecond)

	if _, ok, _ := store.Get(ctx, "short"); ok {
		t.Error("expected expired key to be gone")
	}
	if _, ok, _ := store.Get(ctx, "forever"); !ok {
		t.Error("expected key without expiration to survive")
	}

	store.mu.RLock()
	_, stillThere := store.items["short"]
	store.mu.RUnlock()
	if stillThere {
		t.Error("cleanup did not remove expired item")
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := SetJSON(ctx, store, "rec", record{Name: "Alice", Count: 2}, time.Minute); err != nil {
		t.Fatalf("set json: %v", err)
	}

	var out record
	ok, err := GetJSON(ctx, store, "rec", &out)
	if err != nil || !ok {
		t.Fatalf("get json: ok=%v err=%v", ok, err)
	}
	if out.Name != "Alice" || out.Count != 2 {
		t.Fatalf("unexpected record %+v", out)
	}

	ok, err = GetJSON(ctx, store, "missing", &out)
	if ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	_ = store.Set(ctx, "garbage", []byte("{"), time.Minute)
	if _, err := GetJSON(ctx, store, "garbage", &out); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestMemoryStore_CloseIdempotent(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
}
