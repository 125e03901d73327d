package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	ProductCacheHits   uint64
	ProductCacheMisses uint64
	UsersRegistered    uint64
	LoginsSucceeded    uint64
	LoginsFailed       uint64
	ProductsCreated    uint64
	ProductsDeleted    uint64
	CartAdds           uint64
	CartRemoves        uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	productCacheHits   uint64
	productCacheMisses uint64
	usersRegistered    uint64
	loginsSucceeded    uint64
	loginsFailed       uint64
	productsCreated    uint64
	productsDeleted    uint64
	cartAdds           uint64
	cartRemoves        uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		ProductCacheHits:   atomic.LoadUint64(&m.productCacheHits),
		ProductCacheMisses: atomic.LoadUint64(&m.productCacheMisses),
		UsersRegistered:    atomic.LoadUint64(&m.usersRegistered),
		LoginsSucceeded:    atomic.LoadUint64(&m.loginsSucceeded),
		LoginsFailed:       atomic.LoadUint64(&m.loginsFailed),
		ProductsCreated:    atomic.LoadUint64(&m.productsCreated),
		ProductsDeleted:    atomic.LoadUint64(&m.productsDeleted),
		CartAdds:           atomic.LoadUint64(&m.cartAdds),
		CartRemoves:        atomic.LoadUint64(&m.cartRemoves),
	}
}

// IncProductCacheHit increments the cache hit counter.
func (m *InMemoryRecorder) IncProductCacheHit() {
	atomic.AddUint64(&m.productCacheHits, 1)
}

// IncProductCacheMiss increments the cache miss counter.
func (m *InMemoryRecorder) IncProductCacheMiss() {
	atomic.AddUint64(&m.productCacheMisses, 1)
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLoginSucceeded increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSucceeded() {
	atomic.AddUint64(&m.loginsSucceeded, 1)
}

// IncLoginFailed increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailed() {
	atomic.AddUint64(&m.loginsFailed, 1)
}

// IncProductCreated increments the product created counter.
func (m *InMemoryRecorder) IncProductCreated() {
	atomic.AddUint64(&m.productsCreated, 1)
}

// IncProductDeleted increments the product deleted counter.
func (m *InMemoryRecorder) IncProductDeleted() {
	atomic.AddUint64(&m.productsDeleted, 1)
}

// IncCartAdd increments the cart add counter.
func (m *InMemoryRecorder) IncCartAdd() {
	atomic.AddUint64(&m.cartAdds, 1)
}

// IncCartRemove increments the cart remove counter.
func (m *InMemoryRecorder) IncCartRemove() {
	atomic.AddUint64(&m.cartRemoves, 1)
}
