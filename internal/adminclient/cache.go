package adminclient

import "sync"

// Collection keys for the cache buckets.
const (
	CollectionQuestions        = "questions"
	CollectionUsers            = "users"
	CollectionExercises        = "exercises"
	CollectionWorkoutTemplates = "workout_templates"
)

// Cache is the client-side collection cache. Mutations never patch a bucket
// in place; they invalidate it and the next read refetches, so the cache can
// only ever lag the server, not diverge from it.
type Cache struct {
	mu      sync.RWMutex
	buckets map[string]any
}

func NewCache() *Cache {
	return &Cache{buckets: map[string]any{}}
}

func (c *Cache) Get(collection string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.buckets[collection]
	return value, ok
}

func (c *Cache) Set(collection string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buckets[collection] = value
}

func (c *Cache) Invalidate(collection string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.buckets, collection)
}
