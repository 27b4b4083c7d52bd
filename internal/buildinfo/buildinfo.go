// Package buildinfo exposes values that are fixed when the binary is built.
//
// The build profile is selected with the "release" build tag. Worker
// configuration is injected with -ldflags -X:
//
//	go build -tags release -ldflags "\
//	  -X github.com/randomizedcoder/go-sidecar-shell/internal/buildinfo.apiKey=$OPENROUTER_API_KEY \
//	  -X github.com/randomizedcoder/go-sidecar-shell/internal/buildinfo.model=$OPENROUTER_MODEL" \
//	  ./cmd/go-sidecar-shell
package buildinfo

// Environment variable names forwarded to the worker.
const (
	EnvAPIKey = "OPENROUTER_API_KEY"
	EnvModel  = "OPENROUTER_MODEL"
)

// Set at build time via ldflags. Empty means the value was not provided.
var (
	apiKey string
	model  string
)

// Var is a single build-time configuration value destined for the worker.
type Var struct {
	Name    string
	Value   string
	Present bool
}

// EmbeddedVars returns the fixed set of worker configuration keys and
// whether the build provided each of them.
func EmbeddedVars() []Var {
	return []Var{
		newVar(EnvAPIKey, apiKey),
		newVar(EnvModel, model),
	}
}

// EmbeddedEnv returns the worker environment built from EmbeddedVars.
// Keys the build did not provide are absent from the map.
func EmbeddedEnv() map[string]string {
	return EnvFrom(EmbeddedVars())
}

// EnvFrom collects the present vars into an environment mapping.
func EnvFrom(vars []Var) map[string]string {
	env := make(map[string]string, len(vars))
	for _, v := range vars {
		if !v.Present {
			continue
		}
		env[v.Name] = v.Value
	}
	return env
}

func newVar(name, value string) Var {
	// -X cannot express "unset", so an empty injection counts as absent.
	return Var{Name: name, Value: value, Present: value != ""}
}
