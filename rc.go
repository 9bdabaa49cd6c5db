package rcruntime

// Finalizer is optionally implemented by payloads that need cleanup
// when their strong count reaches zero. Finalize runs exactly once,
// before the object's slot is recycled.
type Finalizer interface {
	Finalize()
}
