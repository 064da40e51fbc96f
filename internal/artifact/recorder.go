package artifact

import "path"

// Recorder is an in-memory [Writer] for tests. It records every write in
// order and can simulate conflicts and injected failures.
type Recorder struct {
	// Writes lists the relative paths written, in write order.
	Writes []string

	// Files maps relative path to the most recent content written.
	Files map[string][]byte

	// Existing marks paths that should behave as pre-existing artifacts:
	// writes with overwrite=false fail with ConflictError.
	Existing map[string]bool

	// FailWith, when set, is returned for writes whose path matches FailPath.
	FailWith error
	FailPath string
}

// NewRecorder creates an empty [Recorder].
func NewRecorder() *Recorder {
	return &Recorder{
		Files:    make(map[string][]byte),
		Existing: make(map[string]bool),
	}
}

// Write implements [Writer].
func (r *Recorder) Write(relPath string, content []byte, overwrite bool) (string, error) {
	cleaned := path.Clean(relPath)

	if r.FailWith != nil && cleaned == r.FailPath {
		return "", r.FailWith
	}

	if !overwrite {
		if r.Existing[cleaned] {
			return "", &ConflictError{Path: cleaned}
		}
		if _, ok := r.Files[cleaned]; ok {
			return "", &ConflictError{Path: cleaned}
		}
	}

	r.Writes = append(r.Writes, cleaned)
	r.Files[cleaned] = content
	return cleaned, nil
}
