// Package viewcount keeps a best-effort, non-authoritative tally of post
// reads. Counts live in the local key→JSON store, not in the durable post
// row; losing them is acceptable and persistence failures are swallowed.
package viewcount

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

const storeKey = "view_counts"

// Store is the persistence seam; localstore.Store satisfies it in
// production, an in-memory fake in tests.
type Store interface {
	Get(key string, dest interface{}) (bool, error)
	Set(key string, value interface{}) error
}

// Counter tallies views per post id.
type Counter struct {
	mu     sync.Mutex
	store  Store
	counts map[string]int
	loaded bool
}

func NewCounter(store Store) *Counter {
	return &Counter{store: store}
}

// load pulls the persisted mapping once; absent or corrupt data becomes an
// empty mapping.
func (c *Counter) load() {
	if c.loaded {
		return
	}
	c.counts = map[string]int{}
	if _, err := c.store.Get(storeKey, &c.counts); err != nil {
		log.Debug().Err(err).Msg("view counts unreadable, starting empty")
		c.counts = map[string]int{}
	}
	c.loaded = true
}

// Bump increments the count for id and persists immediately. It never fails
// visibly: a persistence error keeps the in-memory increment, which may then
// be lost silently.
func (c *Counter) Bump(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.load()
	c.counts[id]++

	if err := c.store.Set(storeKey, c.counts); err != nil {
		log.Debug().Err(err).Str("post_id", id).Msg("view count not persisted")
	}
}

// Snapshot returns a copy of the full mapping. Missing or malformed storage
// yields an empty mapping, never an error.
func (c *Counter) Snapshot() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.load()
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Rank orders ids by view count descending. Ties keep their original order
// (stable sort, no invented tie-break).
func (c *Counter) Rank(ids []string) []string {
	counts := c.Snapshot()

	ranked := make([]string, len(ids))
	copy(ranked, ids)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	return ranked
}
