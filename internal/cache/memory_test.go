package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemory_SetGetDelete(t *testing.T) {
	c := NewMemory("t", time.Minute)
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !IsNotFound(err) {
		t.Fatalf("got %v, want not-found", err)
	}

	if err := c.Set(ctx, "k", "v", 0); err != nil {
		t.Fatal(err)
	}
	v, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if v != "v" {
		t.Fatalf("got %q", v)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(ctx, "k"); !IsNotFound(err) {
		t.Fatalf("got %v after delete, want not-found", err)
	}
}

func TestMemory_TTLExpires(t *testing.T) {
	c := NewMemory("", time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", 30*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(60 * time.Millisecond)
	if _, err := c.Get(ctx, "k"); !IsNotFound(err) {
		t.Fatalf("got %v, want expired", err)
	}
}

func TestMemory_PrefixIsolation(t *testing.T) {
	a := NewMemory("a", time.Minute)
	b := NewMemory("b", time.Minute)
	ctx := context.Background()

	if err := a.Set(ctx, "k", "va", 0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Get(ctx, "k"); !IsNotFound(err) {
		t.Fatalf("prefix leak: %v", err)
	}
}

func TestNew_DefaultsToMemory(t *testing.T) {
	c, err := New(Config{Kind: ""})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Ping(context.Background()); err != nil {
		t.Fatal(err)
	}
}
