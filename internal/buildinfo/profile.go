package buildinfo

// Profile is the compile-time build mode.
type Profile int

const (
	// Development builds look for the worker under the source tree.
	Development Profile = iota

	// Production builds look for the worker next to the running executable.
	Production
)

// String returns a human-readable name for the profile.
func (p Profile) String() string {
	switch p {
	case Development:
		return "development"
	case Production:
		return "production"
	default:
		return "unknown"
	}
}
