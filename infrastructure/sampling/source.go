package sampling

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ahrav/go-threatscore/internal/ports"
)

// pcgStream is the fixed PCG increment seed paired with the caller's seed.
const pcgStream = 0x9e3779b97f4a7c15

// NewSeededSource returns a deterministic source: two sources built from
// the same seed produce the same sequence. The result is not safe for
// concurrent use; wrap it with NewLockedSource when sharing.
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^pcgStream))
}

// NewTimeSeededSource returns a source seeded from the wall clock.
func NewTimeSeededSource() *rand.Rand {
	return NewSeededSource(uint64(time.Now().UnixNano()))
}

var _ ports.RandomSource = (*LockedSource)(nil)

// LockedSource serializes draws from a wrapped source so one source can be
// shared by several generators running on different goroutines.
type LockedSource struct {
	mu  sync.Mutex
	src ports.RandomSource
}

// NewLockedSource wraps src.
func NewLockedSource(src ports.RandomSource) *LockedSource {
	return &LockedSource{src: src}
}

// IntN returns a uniform value in [0, n) from the wrapped source.
func (l *LockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}
