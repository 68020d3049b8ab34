// Package catalog provides access to stores of source text keyed by fully
// qualified class name. A compilation pipeline resolves class names through
// a catalog and feeds the resulting text into in-memory source artifacts;
// the artifacts themselves never leave memory.
package catalog

import (
	"context"
	"errors"
	"strings"
)

// Standard catalog errors.
var (
	ErrNotFound = errors.New("catalog: source not found")
	ErrClosed   = errors.New("catalog: catalog already closed")
)

// Catalog stores and resolves source text by fully qualified class name.
// Implementations must be safe for concurrent use.
type Catalog interface {
	// Resolve returns the source text registered under className.
	// Returns ErrNotFound if the name is unknown.
	Resolve(ctx context.Context, className string) (string, error)

	// Store registers source text under className, replacing any
	// previous text.
	Store(ctx context.Context, className, source string) error

	// List returns the class names under the given dotted package
	// prefix, including nested packages. An empty prefix lists every
	// name in the catalog.
	List(ctx context.Context, pkg string) ([]string, error)

	// Delete removes the source registered under className. Returns
	// true if an entry was removed, false if the name was unknown.
	Delete(ctx context.Context, className string) (bool, error)

	// Close releases any resources held by the catalog.
	Close(ctx context.Context) error
}

// LikePattern builds a SQL LIKE pattern matching every class name under the
// dotted package prefix pkg. LIKE wildcards in pkg are escaped with a
// backslash; SQL implementations must pair the pattern with an
// "ESCAPE '\'" clause.
func LikePattern(pkg string) string {
	escaper := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return escaper.Replace(pkg) + ".%"
}

// InPackage reports whether className sits under the dotted package prefix
// pkg. An empty pkg matches everything. Implementations that list keys
// without server-side filtering use it to apply the List contract.
func InPackage(className, pkg string) bool {
	if pkg == "" {
		return true
	}

	return len(className) > len(pkg)+1 &&
		className[:len(pkg)] == pkg &&
		className[len(pkg)] == '.'
}
