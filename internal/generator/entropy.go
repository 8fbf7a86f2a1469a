package generator

import (
	"io"
	"sync"

	"XRPVanity/internal/crypto"
)

// LockedReader is the randomness gate: one worker at a time reads from the
// underlying source.
type LockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

func NewLockedReader(r io.Reader) *LockedReader {
	return &LockedReader{r: r}
}

func (l *LockedReader) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Read(p)
}

// Seed reads one full seed while holding the lock.
func (l *LockedReader) Seed() ([crypto.SeedSize]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return crypto.NewSeed(l.r)
}
