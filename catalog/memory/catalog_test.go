package memory

import (
	"errors"
	"testing"

	"github.com/mkessel/artifactfs/catalog"
)

func TestMemoryCatalog_StoreResolve(t *testing.T) {
	ctx := t.Context()
	mc := NewMemoryCatalog()
	defer mc.Close(ctx)

	if err := mc.Store(ctx, "com.foo.Bar", "class Bar {}"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	source, err := mc.Resolve(ctx, "com.foo.Bar")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if source != "class Bar {}" {
		t.Errorf("expected stored source, got %q", source)
	}

	// Store replaces
	if err := mc.Store(ctx, "com.foo.Bar", "class Bar { int x; }"); err != nil {
		t.Fatalf("second Store failed: %v", err)
	}

	source, _ = mc.Resolve(ctx, "com.foo.Bar")
	if source != "class Bar { int x; }" {
		t.Errorf("expected replaced source, got %q", source)
	}

	if _, err := mc.Resolve(ctx, "com.foo.Missing"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryCatalog_List(t *testing.T) {
	ctx := t.Context()
	mc := NewMemoryCatalog()
	defer mc.Close(ctx)

	names := []string{"a.b.C", "a.b.D", "a.bc.E", "x.Y"}
	for _, name := range names {
		if err := mc.Store(ctx, name, "class {}"); err != nil {
			t.Fatalf("Store %s failed: %v", name, err)
		}
	}

	got, err := mc.List(ctx, "a.b")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	// "a.bc.E" shares the byte prefix but not the package.
	if len(got) != 2 || got[0] != "a.b.C" || got[1] != "a.b.D" {
		t.Errorf("expected [a.b.C a.b.D], got %v", got)
	}

	all, err := mc.List(ctx, "")
	if err != nil {
		t.Fatalf("List all failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 names, got %d", len(all))
	}
}

func TestMemoryCatalog_Delete(t *testing.T) {
	ctx := t.Context()
	mc := NewMemoryCatalog()
	defer mc.Close(ctx)

	mc.Store(ctx, "com.foo.Bar", "class Bar {}")

	deleted, err := mc.Delete(ctx, "com.foo.Bar")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !deleted {
		t.Error("expected delete to report true")
	}

	deleted, err = mc.Delete(ctx, "com.foo.Bar")
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if deleted {
		t.Error("expected delete of missing entry to report false")
	}
}

func TestMemoryCatalog_Closed(t *testing.T) {
	ctx := t.Context()
	mc := NewMemoryCatalog()

	if err := mc.Close(ctx); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := mc.Store(ctx, "a.B", "class B {}"); !errors.Is(err, catalog.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	if _, err := mc.Resolve(ctx, "a.B"); !errors.Is(err, catalog.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	if err := mc.Close(ctx); !errors.Is(err, catalog.ErrClosed) {
		t.Errorf("expected ErrClosed on double close, got %v", err)
	}
}
