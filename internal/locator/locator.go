// Package locator resolves where the worker executable lives for the
// compiled build profile and confirms it is present on disk.
package locator

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/randomizedcoder/go-sidecar-shell/internal/buildinfo"
)

// DevBinaryDir is where development builds expect the worker, relative to
// the application root (the working directory of a dev run).
const DevBinaryDir = "binaries"

// DefaultWorkerName returns the packaged worker's base name for this OS.
func DefaultWorkerName() string {
	if runtime.GOOS == "windows" {
		return "main.exe"
	}
	return "main"
}

// Locator computes the worker path. The zero value is not usable; use New.
type Locator struct {
	// Profile selects the path strategy. New sets buildinfo.Current.
	Profile buildinfo.Profile

	// WorkerName is the worker's base file name.
	WorkerName string

	// DevDir is the directory searched in Development builds.
	DevDir string

	// Executable returns the path of the running program (os.Executable).
	Executable func() (string, error)

	// Stat is the existence check (os.Stat).
	Stat func(name string) (os.FileInfo, error)
}

// New returns a Locator for the compiled build profile.
// An empty workerName selects DefaultWorkerName.
func New(workerName string) *Locator {
	if workerName == "" {
		workerName = DefaultWorkerName()
	}
	return &Locator{
		Profile:    buildinfo.Current,
		WorkerName: workerName,
		DevDir:     DevBinaryDir,
		Executable: os.Executable,
		Stat:       os.Stat,
	}
}

// Path computes where the worker should be without touching the filesystem.
func (l *Locator) Path() (string, error) {
	if l.Profile != buildinfo.Production {
		return filepath.Join(l.DevDir, l.WorkerName), nil
	}

	exe, err := l.Executable()
	if err != nil {
		return "", &PathResolutionError{Reason: ReasonExecutableLookup, Err: err}
	}
	dir, ok := parentDir(exe)
	if !ok {
		return "", &PathResolutionError{Reason: ReasonNoParent, Path: exe}
	}
	return filepath.Join(dir, l.WorkerName), nil
}

// Resolve computes the worker path and confirms it exists.
// The result is not cached; each call re-checks the filesystem.
func (l *Locator) Resolve() (string, error) {
	path, err := l.Path()
	if err != nil {
		return "", err
	}
	if _, err := l.Stat(path); err != nil {
		return "", &BinaryNotFoundError{Path: path, Err: err}
	}
	return path, nil
}

// parentDir returns the directory holding p, or false when p has none
// (empty path, filesystem root, or a bare file name).
func parentDir(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	clean := filepath.Clean(p)
	dir := filepath.Dir(clean)
	if dir == clean {
		return "", false
	}
	if dir == "." && !strings.ContainsRune(clean, filepath.Separator) {
		return "", false
	}
	return dir, true
}
