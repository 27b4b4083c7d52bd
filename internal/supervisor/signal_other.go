//go:build !unix

package supervisor

// There is no portable graceful signal here; both paths kill.

func terminate(h *WorkerHandle) error {
	return h.process.Kill()
}

func kill(h *WorkerHandle) error {
	return h.process.Kill()
}
