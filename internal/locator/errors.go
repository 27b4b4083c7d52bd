package locator

import "fmt"

// Reasons carried by PathResolutionError.
const (
	ReasonExecutableLookup = "current executable lookup failed"
	ReasonNoParent         = "no parent directory"
)

// PathResolutionError reports that the worker directory could not be
// determined in a Production build.
type PathResolutionError struct {
	Reason string
	Path   string // executable path, when known
	Err    error
}

func (e *PathResolutionError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("resolve worker path: %s: %v", e.Reason, e.Err)
	case e.Path != "":
		return fmt.Sprintf("resolve worker path: %s for %q", e.Reason, e.Path)
	default:
		return "resolve worker path: " + e.Reason
	}
}

func (e *PathResolutionError) Unwrap() error {
	return e.Err
}

// BinaryNotFoundError reports that the resolved worker path does not exist.
type BinaryNotFoundError struct {
	Path string
	Err  error
}

func (e *BinaryNotFoundError) Error() string {
	return fmt.Sprintf("worker binary not found at %q", e.Path)
}

func (e *BinaryNotFoundError) Unwrap() error {
	return e.Err
}
