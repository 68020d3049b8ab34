package artifactfs

// Nesting describes the structural nesting of the type an artifact
// represents. Artifacts never inspect their own content, so the only value
// they report is NestingUnknown; the type exists so callers receive a
// typed absent signal instead of a hidden nil.
type Nesting int

// Nesting constants.
const (
	NestingUnknown Nesting = iota // Nesting was not determined
	NestingTopLevel
	NestingMember
	NestingLocal
	NestingAnonymous
)

// String returns a textual representation of the nesting kind.
func (n Nesting) String() string {
	switch n {
	case NestingTopLevel:
		return "top-level"
	case NestingMember:
		return "member"
	case NestingLocal:
		return "local"
	case NestingAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Access describes the access modifier of the type an artifact represents.
// As with Nesting, artifacts always report AccessUnknown.
type Access int

// Access constants.
const (
	AccessUnknown Access = iota // Access level was not determined
	AccessPublic
	AccessProtected
	AccessPackage
	AccessPrivate
)

// String returns a textual representation of the access level.
func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPackage:
		return "package"
	case AccessPrivate:
		return "private"
	default:
		return "unknown"
	}
}
