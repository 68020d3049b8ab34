package artifactfs

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tidwall/btree"

	"github.com/mkessel/artifactfs/catalog"
	"github.com/mkessel/artifactfs/log"
)

// Workspace collects the artifacts of one compilation unit set. It plays
// the registry half of a compiler's file manager: sources go in, output
// artifacts are handed to the compiler driver, and produced bytes are read
// back out after compilation completes. Driving the compiler itself and
// loading the produced classes stay with the caller.
//
// The workspace serializes its own registry operations; the artifacts it
// hands out remain single-threaded-per-artifact as documented on Artifact.
type Workspace struct {
	mu        sync.RWMutex
	artifacts *btree.Map[string, *Artifact]

	session string
	log     *log.Logger
}

// NewWorkspace creates an empty workspace with a fresh session ID.
func NewWorkspace(opts ...WorkspaceOption) *Workspace {
	w := &Workspace{
		artifacts: btree.NewMap[string, *Artifact](0),
		session:   uuid.Must(uuid.NewV7()).String(),
		log:       log.Nop(),
	}

	for _, opt := range opts {
		opt(w)
	}

	w.log.Debug("workspace %s created", w.session)

	return w
}

// Session returns the workspace's unique session ID.
func (w *Workspace) Session() string {
	return w.session
}

// AddSource creates a source artifact from text and registers it on the
// source path. Returns ErrExist if a source with the same name is already
// registered.
func (w *Workspace) AddSource(className, text string) (*Artifact, error) {
	if className == "" {
		return nil, fmt.Errorf("%w: empty class name", ErrInvalidName)
	}

	a := NewSource(className, text)
	a.log = w.log

	w.mu.Lock()
	defer w.mu.Unlock()

	key := w.key(a)
	if _, exists := w.artifacts.Get(key); exists {
		return nil, fmt.Errorf("%w: %s", ErrExist, a.Name())
	}

	w.artifacts.Set(key, a)
	w.log.Debug("registered source %s", a.Name())

	return a, nil
}

// LoadSource resolves className through the given catalog and registers the
// resulting source artifact. Returns the catalog's error unchanged when
// resolution fails.
func (w *Workspace) LoadSource(ctx context.Context, cat catalog.Catalog, className string) (*Artifact, error) {
	text, err := cat.Resolve(ctx, className)
	if err != nil {
		return nil, err
	}

	return w.AddSource(className, text)
}

// Output returns the artifact for compiler output named by className at the
// given location, creating and registering it on first use. Repeated calls
// with the same name and kind return the same artifact.
func (w *Workspace) Output(location Location, className string, kind Kind, sibling *Artifact) *Artifact {
	a := NewOutput(location, className, kind, sibling)
	a.log = w.log

	w.mu.Lock()
	defer w.mu.Unlock()

	key := w.key(a)
	if existing, exists := w.artifacts.Get(key); exists {
		return existing
	}

	w.artifacts.Set(key, a)
	w.log.Debug("registered output %s at %s", a.Name(), location)

	return a
}

// Resource returns the generic resource artifact for the given package and
// relative name at the given location, creating and registering it on
// first use.
func (w *Workspace) Resource(location Location, pkg, relativeName string, sibling *Artifact) *Artifact {
	a := NewResource(location, pkg, relativeName, sibling)
	a.log = w.log

	w.mu.Lock()
	defer w.mu.Unlock()

	key := w.key(a)
	if existing, exists := w.artifacts.Get(key); exists {
		return existing
	}

	w.artifacts.Set(key, a)
	w.log.Debug("registered resource %s at %s", a.Name(), location)

	return a
}

// Lookup returns the registered artifact with the given URI path at the
// given location. Returns ErrNotExist if nothing is registered under that
// name.
func (w *Workspace) Lookup(location Location, name string) (*Artifact, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	a, exists := w.artifacts.Get(location.String() + ":" + name)
	if !exists {
		return nil, fmt.Errorf("%w: %s at %s", ErrNotExist, name, location)
	}

	return a, nil
}

// List returns the artifacts under the given package at the given location
// whose kind is in kinds. An empty kinds set matches every kind. When
// recurse is false, artifacts in sub-packages are skipped.
func (w *Workspace) List(location Location, pkg string, kinds []Kind, recurse bool) []*Artifact {
	prefix := location.String() + ":/"
	if pkg != "" {
		prefix += strings.ReplaceAll(pkg, ".", "/") + "/"
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	var matches []*Artifact
	w.artifacts.Scan(func(key string, a *Artifact) bool {
		if !strings.HasPrefix(key, prefix) {
			// Keys sort lexicographically, but location prefixes interleave
			// with path prefixes, so scan the whole tree.
			return true
		}

		if !recurse && strings.Contains(key[len(prefix):], "/") {
			return true
		}

		if len(kinds) == 0 {
			matches = append(matches, a)
			return true
		}

		for _, k := range kinds {
			if a.Kind() == k {
				matches = append(matches, a)
				break
			}
		}

		return true
	})

	return matches
}

// Artifacts returns every artifact registered at the given location in
// name order.
func (w *Workspace) Artifacts(location Location) []*Artifact {
	prefix := location.String() + ":"

	w.mu.RLock()
	defer w.mu.RUnlock()

	var all []*Artifact
	w.artifacts.Scan(func(key string, a *Artifact) bool {
		if strings.HasPrefix(key, prefix) {
			all = append(all, a)
		}
		return true
	})

	return all
}

// BinaryName converts an artifact's URI path back to a dotted type name,
// e.g. "/a/b/C.class" becomes "a.b.C". The kind's extension is stripped
// when present.
func (w *Workspace) BinaryName(a *Artifact) string {
	name := strings.TrimPrefix(a.Name(), "/")
	name = strings.TrimSuffix(name, a.Kind().Extension())

	return strings.ReplaceAll(name, "/", ".")
}

// Len returns the number of registered artifacts across all locations.
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.artifacts.Len()
}

// key builds the registry key for an artifact. Names are unique per
// location, and the derived name already encodes the kind's extension.
func (w *Workspace) key(a *Artifact) string {
	return a.Location().String() + ":" + a.Name()
}
