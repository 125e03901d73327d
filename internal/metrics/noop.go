package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncProductCacheHit is a no-op.
func (n *NoopRecorder) IncProductCacheHit() {}

// IncProductCacheMiss is a no-op.
func (n *NoopRecorder) IncProductCacheMiss() {}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncLoginSucceeded is a no-op.
func (n *NoopRecorder) IncLoginSucceeded() {}

// IncLoginFailed is a no-op.
func (n *NoopRecorder) IncLoginFailed() {}

// IncProductCreated is a no-op.
func (n *NoopRecorder) IncProductCreated() {}

// IncProductDeleted is a no-op.
func (n *NoopRecorder) IncProductDeleted() {}

// IncCartAdd is a no-op.
func (n *NoopRecorder) IncCartAdd() {}

// IncCartRemove is a no-op.
func (n *NoopRecorder) IncCartRemove() {}
