//go:build release

package buildinfo

// Current is the profile this binary was compiled with.
const Current = Production
