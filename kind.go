package artifactfs

// Kind categorizes an artifact and fixes its canonical file extension.
// The kind decides whether character content access is permitted: only
// KindSource artifacts expose their content as text.
type Kind int

// Artifact kind constants matching the categories a compiler toolchain
// distinguishes between.
const (
	KindSource Kind = iota // Source text
	KindClass              // Compiled class bytecode
	KindHTML               // Human-readable output (e.g. generated docs)
	KindOther              // Any other resource
)

// Extension returns the canonical file extension for the kind, including
// the leading dot. KindOther has no extension.
func (k Kind) Extension() string {
	switch k {
	case KindSource:
		return ".java"
	case KindClass:
		return ".class"
	case KindHTML:
		return ".html"
	default:
		return ""
	}
}

// String returns a textual representation of the kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindClass:
		return "class"
	case KindHTML:
		return "html"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}
