package sqlite

import (
	"errors"
	"testing"

	"github.com/mkessel/artifactfs/catalog"
)

func newTestCatalog(t *testing.T) *SQLiteCatalog {
	t.Helper()

	sc, err := NewSQLiteCatalog(":memory:")
	if err != nil {
		t.Fatalf("failed to create catalog: %v", err)
	}

	t.Cleanup(func() {
		sc.Close(t.Context())
	})

	return sc
}

func TestSQLiteCatalog_StoreResolve(t *testing.T) {
	ctx := t.Context()
	sc := newTestCatalog(t)

	if err := sc.Store(ctx, "com.foo.Bar", "class Bar {}"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	source, err := sc.Resolve(ctx, "com.foo.Bar")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if source != "class Bar {}" {
		t.Errorf("expected stored source, got %q", source)
	}

	// Store replaces
	if err := sc.Store(ctx, "com.foo.Bar", "class Bar { int x; }"); err != nil {
		t.Fatalf("second Store failed: %v", err)
	}

	source, _ = sc.Resolve(ctx, "com.foo.Bar")
	if source != "class Bar { int x; }" {
		t.Errorf("expected replaced source, got %q", source)
	}

	if _, err := sc.Resolve(ctx, "com.foo.Missing"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteCatalog_List(t *testing.T) {
	ctx := t.Context()
	sc := newTestCatalog(t)

	names := []string{"a.b.C", "a.b.D", "x.Y"}
	for _, name := range names {
		if err := sc.Store(ctx, name, "class {}"); err != nil {
			t.Fatalf("Store %s failed: %v", name, err)
		}
	}

	got, err := sc.List(ctx, "a.b")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 || got[0] != "a.b.C" || got[1] != "a.b.D" {
		t.Errorf("expected [a.b.C a.b.D], got %v", got)
	}

	all, err := sc.List(ctx, "")
	if err != nil {
		t.Fatalf("List all failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 names, got %d", len(all))
	}
}

func TestSQLiteCatalog_ListEscapesWildcards(t *testing.T) {
	ctx := t.Context()
	sc := newTestCatalog(t)

	// "_" is a LIKE wildcard but legal in package names; it must match
	// itself only.
	names := []string{"a_b.C", "axb.D"}
	for _, name := range names {
		if err := sc.Store(ctx, name, "class {}"); err != nil {
			t.Fatalf("Store %s failed: %v", name, err)
		}
	}

	got, err := sc.List(ctx, "a_b")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0] != "a_b.C" {
		t.Errorf("expected [a_b.C], got %v", got)
	}
}

func TestSQLiteCatalog_Delete(t *testing.T) {
	ctx := t.Context()
	sc := newTestCatalog(t)

	if err := sc.Store(ctx, "com.foo.Bar", "class Bar {}"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	deleted, err := sc.Delete(ctx, "com.foo.Bar")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !deleted {
		t.Error("expected delete to report true")
	}

	deleted, err = sc.Delete(ctx, "com.foo.Bar")
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if deleted {
		t.Error("expected delete of missing entry to report false")
	}

	if _, err := sc.Resolve(ctx, "com.foo.Bar"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
