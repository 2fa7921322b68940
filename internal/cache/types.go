package cache

// Store is the backing storage for cached RPC results. Implementations must
// be safe for concurrent use.
type Store interface {
	// Get retrieves a cached result payload by key.
	Get(key string) ([]byte, bool)

	// Set stores a result payload under the given key.
	Set(key string, value []byte)

	// Close releases any resources held by the store.
	Close()
}
