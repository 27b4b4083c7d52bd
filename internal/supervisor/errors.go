package supervisor

import "fmt"

// Launch stages, used as the metrics label for failures.
const (
	StageLocate = "locate"
	StageBuild  = "build"
	StageSpawn  = "spawn"
)

// SpawnError reports that the OS refused or failed to create the worker.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start worker %q: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
