package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/fflap/portfolio/internal/db"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": NewSQLite(openTestDB(t), "visitor-1"),
	}
}

func TestStoreGetMissing(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			v, ok, err := s.Get(context.Background(), KeyTheme)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if ok || v != "" {
				t.Fatalf("expected missing key, got %q ok=%v", v, ok)
			}
		})
	}
}

func TestStoreSetOverwrites(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(ctx, KeyTheme, "green"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set(ctx, KeyTheme, "blue"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			v, ok, err := s.Get(ctx, KeyTheme)
			if err != nil || !ok {
				t.Fatalf("Get: %q %v %v", v, ok, err)
			}
			if v != "blue" {
				t.Fatalf("value = %q, want blue", v)
			}
		})
	}
}

func TestStoreEmptyKey(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(ctx, " ", "x"); !errors.Is(err, ErrEmptyKey) {
				t.Fatalf("Set err = %v, want ErrEmptyKey", err)
			}
			if _, _, err := s.Get(ctx, ""); !errors.Is(err, ErrEmptyKey) {
				t.Fatalf("Get err = %v, want ErrEmptyKey", err)
			}
		})
	}
}

func TestSQLiteScopesByVisitor(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)
	a := NewSQLite(d, "a")
	b := NewSQLite(d, "b")
	if err := a.Set(ctx, KeyBackground, "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := b.Get(ctx, KeyBackground); ok {
		t.Fatal("visitor b sees visitor a's preference")
	}
	v, ok, err := NewSQLite(d, "a").Get(ctx, KeyBackground)
	if err != nil || !ok || v != "true" {
		t.Fatalf("fresh store for a: %q %v %v", v, ok, err)
	}
}
