package artifactfs

// Location identifies the symbolic classpath or sourcepath bucket an
// artifact belongs to. Locations are purely symbolic; none of them resolve
// against a real filesystem.
type Location int

// Standard location constants mirroring the roles a compiler driver
// registers file objects against.
const (
	LocationSourcePath   Location = iota // Compiler input sources
	LocationClassPath                    // Dependency classes
	LocationClassOutput                  // Compiled class output
	LocationSourceOutput                 // Generated source output
)

// IsOutput reports whether the location holds artifacts produced by a
// compilation step rather than consumed by one.
func (l Location) IsOutput() bool {
	return l == LocationClassOutput || l == LocationSourceOutput
}

// String returns a textual representation of the location for diagnostics.
func (l Location) String() string {
	switch l {
	case LocationSourcePath:
		return "source-path"
	case LocationClassPath:
		return "class-path"
	case LocationClassOutput:
		return "class-output"
	case LocationSourceOutput:
		return "source-output"
	default:
		return "unknown"
	}
}
