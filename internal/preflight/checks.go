// Package preflight provides startup validation checks.
package preflight

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/randomizedcoder/go-sidecar-shell/internal/buildinfo"
)

// minFileDescriptors covers the host, its metrics listener and the worker's
// inherited descriptors.
const minFileDescriptors = 256

// Check represents the result of a single preflight check.
type Check struct {
	Name     string // Name of the check
	Required int    // Required value (if applicable)
	Actual   int    // Actual value found
	Passed   bool   // Whether the check passed
	Warning  bool   // True if it's a warning (non-fatal)
	Message  string // Additional context
}

// Result holds the results of all preflight checks.
type Result struct {
	Checks []Check
	Passed bool
}

// String returns a human-readable summary of the check.
func (c Check) String() string {
	status := "✓"
	if !c.Passed {
		status = "✗"
	} else if c.Warning {
		status = "⚠"
	}

	if c.Required > 0 {
		return fmt.Sprintf("  %s %s: %d available (need %d)", status, c.Name, c.Actual, c.Required)
	}
	return fmt.Sprintf("  %s %s: %s", status, c.Name, c.Message)
}

// Resolver resolves the worker path (satisfied by *locator.Locator).
type Resolver interface {
	Resolve() (string, error)
}

// RunAll executes all preflight checks.
func RunAll(resolver Resolver, vars []buildinfo.Var) *Result {
	result := &Result{
		Checks: make([]Check, 0, 3+len(vars)),
		Passed: true,
	}
	add := func(c Check) {
		result.Checks = append(result.Checks, c)
		if !c.Passed {
			result.Passed = false
		}
	}

	path, binCheck := checkWorkerBinary(resolver)
	add(binCheck)
	if binCheck.Passed {
		add(checkWorkerExecutable(path))
	}

	for _, v := range vars {
		add(checkBuildVar(v))
	}

	add(checkFileDescriptors())
	return result
}

// checkWorkerBinary verifies the worker can be located for this build profile.
func checkWorkerBinary(resolver Resolver) (string, Check) {
	path, err := resolver.Resolve()
	if err != nil {
		return "", Check{
			Name:    "worker_binary",
			Passed:  false,
			Message: err.Error(),
		}
	}
	return path, Check{
		Name:    "worker_binary",
		Passed:  true,
		Message: fmt.Sprintf("found at %s (%s build)", path, buildinfo.Current),
	}
}

// checkWorkerExecutable verifies the worker is a regular file the OS can run.
func checkWorkerExecutable(path string) Check {
	info, err := os.Stat(path)
	if err != nil {
		return Check{Name: "worker_executable", Passed: false, Message: err.Error()}
	}
	if !info.Mode().IsRegular() {
		return Check{
			Name:    "worker_executable",
			Passed:  false,
			Message: fmt.Sprintf("%s is not a regular file", path),
		}
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		return Check{
			Name:    "worker_executable",
			Passed:  false,
			Message: fmt.Sprintf("%s is not executable (mode %s)", path, info.Mode().Perm()),
		}
	}
	return Check{Name: "worker_executable", Passed: true, Message: info.Mode().Perm().String()}
}

// checkBuildVar reports whether a worker variable was embedded at build time.
// A missing value is a warning: the worker still starts without it.
func checkBuildVar(v buildinfo.Var) Check {
	if !v.Present {
		return Check{
			Name:    v.Name,
			Passed:  true,
			Warning: true,
			Message: "not embedded at build time (worker will not receive it)",
		}
	}
	return Check{Name: v.Name, Passed: true, Message: "embedded"}
}

// checkFileDescriptors verifies a sane open-file limit.
func checkFileDescriptors() Check {
	actual, err := fileDescriptorLimit()
	if err != nil {
		return Check{
			Name:    "file_descriptors",
			Passed:  true,
			Warning: true,
			Message: "unable to check: " + err.Error(),
		}
	}
	return Check{
		Name:     "file_descriptors",
		Required: minFileDescriptors,
		Actual:   actual,
		Passed:   actual >= minFileDescriptors,
		Message:  fmt.Sprintf("ulimit -n %d (need %d)", actual, minFileDescriptors),
	}
}

// PrintResults writes the check results to w.
func PrintResults(w io.Writer, result *Result) {
	fmt.Fprintln(w, "Preflight checks:")
	for _, check := range result.Checks {
		fmt.Fprintln(w, check.String())
		if !check.Passed {
			fmt.Fprintf(w, "    Fix: %s\n", suggestFix(check.Name))
		}
	}
	fmt.Fprintln(w)
}

// suggestFix returns a suggestion for fixing a failed check.
func suggestFix(name string) string {
	switch name {
	case "worker_binary":
		if buildinfo.Current == buildinfo.Production {
			return "install the worker next to the application executable"
		}
		return "build the worker into ./binaries (see the build scripts)"
	case "worker_executable":
		return "chmod +x the worker binary"
	case "file_descriptors":
		return "ulimit -n 1024 (or edit /etc/security/limits.conf)"
	default:
		return "see documentation"
	}
}
