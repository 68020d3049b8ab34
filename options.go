package artifactfs

import "github.com/mkessel/artifactfs/log"

// WorkspaceOption configures a workspace during construction.
type WorkspaceOption func(*Workspace)

// WithLogger replaces the workspace's logger. Artifacts created through
// the workspace trace their stream opens through it.
func WithLogger(logger *log.Logger) WorkspaceOption {
	return func(w *Workspace) {
		w.log = logger
	}
}

// WithLogLevel installs a terminal logger at the given level.
func WithLogLevel(level log.Level) WorkspaceOption {
	return func(w *Workspace) {
		w.log = log.New("artifactfs", level, "")
	}
}
