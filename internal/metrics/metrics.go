// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Catalog cache metrics
	IncProductCacheHit()
	IncProductCacheMiss()

	// Account metrics
	IncUserRegistered()
	IncLoginSucceeded()
	IncLoginFailed()

	// Catalog metrics
	IncProductCreated()
	IncProductDeleted()

	// Cart metrics
	IncCartAdd()
	IncCartRemove()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
