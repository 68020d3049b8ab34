package artifactfs

import "strings"

// identity is the naming scheme an artifact was constructed with. Exactly
// one concrete scheme exists per artifact; the scheme never changes after
// construction, which keeps the derived URI stable for the lifetime of the
// artifact.
type identity interface {
	// path derives the slash-separated pseudo-filesystem path for the
	// given kind, without the leading root slash.
	path(kind Kind) string
}

// classIdentity names an artifact by a fully qualified type name, e.g.
// "com.foo.Bar". Used for source and class artifacts.
type classIdentity struct {
	className string
}

func (id classIdentity) path(kind Kind) string {
	return strings.ReplaceAll(id.className, ".", "/") + kind.Extension()
}

// resourceIdentity names an artifact by a package name plus a relative
// path, e.g. package "p.q" and relative name "res.txt".
type resourceIdentity struct {
	packageName  string
	relativeName string
}

func (id resourceIdentity) path(kind Kind) string {
	return strings.ReplaceAll(id.packageName, ".", "/") + "/" + id.relativeName + kind.Extension()
}

// relativeIdentity names an artifact by a relative path alone, used for
// resources created without a package.
type relativeIdentity struct {
	relativeName string
}

func (id relativeIdentity) path(kind Kind) string {
	return id.relativeName + kind.Extension()
}
