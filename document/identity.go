package document

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     io.Reader
	entropyOnce sync.Once
	generator   = defaultGenerator
)

func defaultEntropy() io.Reader {
	entropyOnce.Do(func() {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		entropy = &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rng, 0),
		}
	})
	return entropy
}

func defaultGenerator() string {
	ts := ulid.Timestamp(time.Now())
	return ulid.MustNew(ts, defaultEntropy()).String()
}

// NewID generates a fresh block identity.
func NewID() string {
	return generator()
}

// ValidID reports whether id parses as a ULID.
func ValidID(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}

// MockIDGenerator replaces the identity generator, for tests.
func MockIDGenerator(gen func() string) {
	generator = gen
}

// ResetIDGenerator restores the default identity generator.
func ResetIDGenerator() {
	generator = defaultGenerator
}

// EnsureIdentities assigns a fresh identity to every block-level node that is
// missing one. The editing surface normally stamps identities itself; this is
// the fallback for legacy payloads that rely on offset mapping only. It
// returns the number of identities assigned.
func EnsureIdentities(root *Node) int {
	assigned := 0
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Kind.IsBlock() && n.ID == "" {
			n.ID = NewID()
			assigned++
		}
		for i := range n.Children {
			walk(&n.Children[i])
		}
	}
	for i := range root.Children {
		walk(&root.Children[i])
	}
	return assigned
}
