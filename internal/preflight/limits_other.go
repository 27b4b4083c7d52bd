//go:build !unix

package preflight

import (
	"errors"
	"runtime"
)

var errLimitUnsupported = errors.New("not supported on " + runtime.GOOS)

func fileDescriptorLimit() (int, error) {
	return 0, errLimitUnsupported
}
