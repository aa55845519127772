package ristretto_test

import (
	"context"
	"testing"
	"time"

	"github.com/Strob0t/SkillBridge/internal/adapter/ristretto"
	"github.com/Strob0t/SkillBridge/internal/port/cache"
)

var _ cache.Cache = (*ristretto.Cache)(nil)

func TestCacheSetGetDelete(t *testing.T) {
	c, err := ristretto.New(1 << 20)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	if err := c.Set(ctx, "POST /api/save-path|k1", []byte(`{"ok":true}`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := c.Get(ctx, "POST /api/save-path|k1")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(got) != `{"ok":true}` {
		t.Errorf("unexpected value %q", got)
	}

	if err := c.Delete(ctx, "POST /api/save-path|k1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "POST /api/save-path|k1"); ok {
		t.Error("expected miss after delete")
	}
}

func TestCacheRejectsOversizedValue(t *testing.T) {
	c, err := ristretto.New(64)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	err = c.Set(context.Background(), "big", make([]byte, 1024), time.Minute)
	if err == nil {
		if _, ok, _ := c.Get(context.Background(), "big"); ok {
			t.Fatal("oversized value must not be retrievable")
		}
	}
}

func TestCacheOverwriteAndDeleteMissing(t *testing.T) {
	c, err := ristretto.New(1 << 20)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("Delete of unknown key: %v", err)
	}

	_ = c.Set(ctx, "ow", []byte("v1"), time.Minute)
	_ = c.Set(ctx, "ow", []byte("v2"), time.Minute)
	got, ok, err := c.Get(ctx, "ow")
	if err != nil || !ok {
		t.Fatalf("expected hit after overwrite, ok=%v err=%v", ok, err)
	}
	if string(got) != "v2" {
		t.Fatalf("expected v2, got %s", got)
	}
}
