package workers

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "dispatcher is not running"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
