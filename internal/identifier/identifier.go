// Package identifier generates the ORD-/SALE- style ids used across the
// ledgers. Ids stay in the <PREFIX>-<digits> shape the report normalizer
// recognizes, but collisions under rapid successive creation are ruled out
// by a guarded sequence instead of a bare millisecond clock.
package identifier

import (
	"fmt"
	"sync"
	"time"
)

const (
	PrefixOrder = "ORD"
	PrefixSale  = "SALE"
)

type Generator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func New() *Generator {
	return &Generator{now: time.Now}
}

// NewID returns "<prefix>-<n>" where n is strictly increasing for the
// lifetime of the generator, seeded from the millisecond clock.
func (g *Generator) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.now().UnixMilli() * 1000
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n

	return fmt.Sprintf("%s-%d", prefix, n)
}
