package artifactfs

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/mkessel/artifactfs/log"
)

// Artifact represents one named, typed unit of compiler input or output
// held entirely in memory: a source file, compiled class bytes, or a
// miscellaneous resource produced by a processing step. It satisfies the
// identity, naming and stream-access contract a compiler driver expects
// from a file object while never touching a real filesystem.
//
// Artifacts are created through one of the three factory functions, never
// through a general constructor, so that exactly one naming scheme is
// populated per instance.
//
// An Artifact is not safe for concurrent use. The owning driver must
// ensure at most one writer is active per artifact at a time.
type Artifact struct {
	location Location
	id       identity
	kind     Kind
	sibling  *Artifact

	content []byte    // nil until the first committed write
	modTime time.Time // zero until the first committed write
	uri     *url.URL  // memoized, derived from identity and kind

	log *log.Logger
}

// NewResource creates a generic resource artifact of KindOther. When pkg is
// non-empty the artifact is named by "pkg-path/relativeName"; otherwise the
// relative name is used verbatim. The sibling is a non-owning reference
// kept only to influence derived naming and may be nil.
func NewResource(location Location, pkg, relativeName string, sibling *Artifact) *Artifact {
	var id identity
	if pkg != "" {
		id = resourceIdentity{packageName: pkg, relativeName: relativeName}
	} else {
		id = relativeIdentity{relativeName: relativeName}
	}

	return &Artifact{
		location: location,
		id:       id,
		kind:     KindOther,
		sibling:  sibling,
		log:      log.Nop(),
	}
}

// NewOutput creates an artifact for compiler output, named by a fully
// qualified class name. The kind is caller-specified, typically KindClass
// for bytecode or KindSource for generated sources. The sibling may be nil.
func NewOutput(location Location, className string, kind Kind, sibling *Artifact) *Artifact {
	return &Artifact{
		location: location,
		id:       classIdentity{className: className},
		kind:     kind,
		sibling:  sibling,
		log:      log.Nop(),
	}
}

// NewSource creates a source artifact on the source path with its content
// pre-populated from the given text.
func NewSource(className, text string) *Artifact {
	return &Artifact{
		location: LocationSourcePath,
		id:       classIdentity{className: className},
		kind:     KindSource,
		content:  []byte(text),
		log:      log.Nop(),
	}
}

// URI derives a pseudo-filesystem URI from the artifact's identity and
// kind, memoizing the result. The URI pretends to be rooted at a synthetic
// filesystem root and must never be resolved against a real filesystem.
//
// A malformed derived path is a programming error given the construction
// discipline and panics rather than returning an error.
func (a *Artifact) URI() *url.URL {
	if a.uri == nil {
		raw := "file:/" + a.id.path(a.kind)
		u, err := url.Parse(raw)
		if err != nil {
			panic(fmt.Sprintf("artifactfs: derived URI %q is not valid: %v", raw, err))
		}
		a.uri = u
	}

	return a.uri
}

// Name returns the path component of the artifact's URI.
func (a *Artifact) Name() string {
	return a.URI().Path
}

// Kind returns the artifact's kind.
func (a *Artifact) Kind() Kind {
	return a.kind
}

// Location returns the symbolic bucket the artifact belongs to.
func (a *Artifact) Location() Location {
	return a.location
}

// Sibling returns the non-owning sibling reference used for naming
// derivation, or nil if the artifact was created without one.
func (a *Artifact) Sibling() *Artifact {
	return a.sibling
}

// Bytes returns the artifact's current content, or nil if nothing has been
// written yet. The returned slice is the artifact's backing buffer and must
// not be modified by the caller.
func (a *Artifact) Bytes() []byte {
	return a.content
}

// LastModified returns the time content was last committed through an
// output stream or text writer, or the zero time if never written.
func (a *Artifact) LastModified() time.Time {
	return a.modTime
}

// Delete always reports false. The in-memory model does not support
// removal; artifacts are write-once-per-compile and never removable
// mid-session.
func (a *Artifact) Delete() bool {
	return false
}

// OpenInput returns a reader over a snapshot of the current content.
// Returns ErrNoContent if nothing has ever been written.
func (a *Artifact) OpenInput() (io.ReadCloser, error) {
	if a.content == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, a.Name())
	}

	a.log.Debug("opening input stream for %s", a.Name())
	return io.NopCloser(bytes.NewReader(a.content)), nil
}

// OpenOutput returns a buffering byte sink. Written bytes are invisible to
// readers until Close, which atomically replaces the artifact's content
// with everything written and stamps the modification time. A stream that
// is never closed commits nothing; callers must guarantee Close runs on
// every exit path.
func (a *Artifact) OpenOutput() io.WriteCloser {
	a.log.Debug("opening output stream for %s", a.Name())
	return &outputStream{artifact: a}
}

// OpenTextWriter returns a character-oriented sink. Accumulated text is
// converted to UTF-8 bytes on Close and committed the same way OpenOutput
// commits. No other encoding is negotiated; callers needing a specific
// byte encoding should use OpenOutput instead. No kind restriction is
// enforced, deliberately.
func (a *Artifact) OpenTextWriter() *TextWriter {
	a.log.Debug("opening text writer for %s", a.Name())
	return &TextWriter{artifact: a}
}

// Text returns the decoded content of a source artifact. The boolean
// reports whether content exists at all: a source artifact that has never
// been written yields ("", false, nil), which is not an error. Non-source
// artifacts always fail with ErrNotSource regardless of write state.
func (a *Artifact) Text() (string, bool, error) {
	if a.kind != KindSource {
		return "", false, fmt.Errorf("%w: %s", ErrNotSource, a.Name())
	}

	if a.content == nil {
		return "", false, nil
	}

	return string(a.content), true, nil
}

// IsNameCompatible reports whether the artifact could represent the given
// simple name of the given kind. It is true iff the kinds match and the
// expected base name (simple name plus the kind's extension) equals the
// artifact's URI path or is a path suffix of it following a separator.
func (a *Artifact) IsNameCompatible(simpleName string, kind Kind) bool {
	if kind != a.kind {
		return false
	}

	baseName := simpleName + kind.Extension()
	path := a.URI().Path

	return baseName == path || strings.HasSuffix(path, "/"+baseName)
}

// NestingKind reports the structural nesting of the type the artifact
// represents. This abstraction does not analyze its content and always
// answers NestingUnknown.
func (a *Artifact) NestingKind() Nesting {
	return NestingUnknown
}

// AccessLevel reports the access modifier of the type the artifact
// represents. This abstraction does not analyze its content and always
// answers AccessUnknown.
func (a *Artifact) AccessLevel() Access {
	return AccessUnknown
}

// String returns a diagnostic description of the artifact.
func (a *Artifact) String() string {
	return fmt.Sprintf("Artifact{location=%s, kind=%s, name=%s}", a.location, a.kind, a.Name())
}

// commit is the single state-mutation point for the whole abstraction.
// It replaces the content buffer and stamps the modification time; both
// output stream variants funnel through it on Close.
func (a *Artifact) commit(content []byte) {
	a.content = content
	a.modTime = time.Now()
}
