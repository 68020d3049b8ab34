// Package memory provides an in-memory source catalog backed by a B-tree.
// It is the default choice for tests and for pipelines whose sources are
// supplied programmatically.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tidwall/btree"

	"github.com/mkessel/artifactfs/catalog"
)

// MemoryCatalog stores source text in an in-memory B-tree keyed by class
// name. Lookups and package listings are O(log n).
type MemoryCatalog struct {
	mu      sync.RWMutex
	sources *btree.Map[string, string]
	closed  bool
}

// NewMemoryCatalog creates an empty in-memory catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		sources: btree.NewMap[string, string](0),
	}
}

// Resolve returns the source text registered under className.
func (mc *MemoryCatalog) Resolve(ctx context.Context, className string) (string, error) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	if mc.closed {
		return "", catalog.ErrClosed
	}

	source, exists := mc.sources.Get(className)
	if !exists {
		return "", fmt.Errorf("%w: %s", catalog.ErrNotFound, className)
	}

	return source, nil
}

// Store registers source text under className, replacing any previous text.
func (mc *MemoryCatalog) Store(ctx context.Context, className, source string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.closed {
		return catalog.ErrClosed
	}

	mc.sources.Set(className, source)
	return nil
}

// List returns the class names under the given dotted package prefix in
// lexical order.
func (mc *MemoryCatalog) List(ctx context.Context, pkg string) ([]string, error) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	if mc.closed {
		return nil, catalog.ErrClosed
	}

	var names []string
	if pkg == "" {
		mc.sources.Scan(func(name, _ string) bool {
			names = append(names, name)
			return true
		})
		return names, nil
	}

	// Class names sort lexicographically, so every member of the package
	// sits in the contiguous range starting at "pkg.".
	prefix := pkg + "."
	mc.sources.Ascend(prefix, func(name, _ string) bool {
		if !strings.HasPrefix(name, prefix) {
			return false
		}
		names = append(names, name)
		return true
	})

	return names, nil
}

// Delete removes the source registered under className.
func (mc *MemoryCatalog) Delete(ctx context.Context, className string) (bool, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.closed {
		return false, catalog.ErrClosed
	}

	_, existed := mc.sources.Delete(className)
	return existed, nil
}

// Close clears the catalog and marks it closed.
func (mc *MemoryCatalog) Close(ctx context.Context) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.closed {
		return catalog.ErrClosed
	}

	mc.closed = true
	mc.sources.Clear()
	return nil
}
